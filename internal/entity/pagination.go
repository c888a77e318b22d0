package entity

const maxLimit = 50

type PaginationInput struct {
	Limit  int
	Offset int
}

// NewPaginationInput clamps limit into [0, 50] and offset to >= 0, so the
// bounds hold even for callers that bypass the HTTP validation.
func NewPaginationInput(limit int, offset int) *PaginationInput {
	if limit < 0 {
		limit = 0
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return &PaginationInput{
		Limit:  limit,
		Offset: offset,
	}
}
