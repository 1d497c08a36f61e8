package dto

// ContractResponse is a company contract.
type ContractResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Title     string `json:"title"`
}

// BranchResponse is a company branch.
type BranchResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ZoneResponse is a zone within a branch.
type ZoneResponse struct {
	ID       int64  `json:"id"`
	BranchID int64  `json:"branchId"`
	Title    string `json:"title"`
}

// LookupResponse is a catalog entry (services, types, statuses, tools).
type LookupResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	NameArabic string `json:"nameArabic,omitempty"`
	Code       string `json:"code,omitempty"`
	ParentID   *int64 `json:"parentId,omitempty"`
}
