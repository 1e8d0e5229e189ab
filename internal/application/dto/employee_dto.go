package dto

// CreateEmployeeRequest body para POST /api/employees.
type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	HireDate string `json:"hire_date,omitempty"`
}

// UpdateEmployeeRequest body para PUT /api/employees/:id.
type UpdateEmployeeRequest = CreateEmployeeRequest

// EmployeeResponse empleado en respuestas.
type EmployeeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	HireDate string `json:"hire_date,omitempty"`
	IsActive bool   `json:"is_active"`
}
