package request

type CreateResourceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// IsActive defaults a new resource to active when the flag is omitted.
func (r CreateResourceRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

type UpdateResourceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
