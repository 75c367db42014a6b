package models

// PaginationMeta describes one page of a transaction listing.
type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type PaginatedTransactions struct {
	Data []Transaction  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// UserPagination is the users-service flavour of the same thing; the field
// names differ because they are part of that service's response contract.
type UserPagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type PaginatedUsers struct {
	Users      []User         `json:"users"`
	Pagination UserPagination `json:"pagination"`
}

// TotalPages rounds up, so a partial trailing page still counts.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
