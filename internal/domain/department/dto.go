package department

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
