package entity

import "time"

// Company representa una organización/tenant del sistema. CompanyID es la
// frontera de aislamiento multi-tenant: toda consulta al ledger y a las
// órdenes de reposición se filtra por esta columna.
type Company struct {
	ID        string
	Name      string
	TaxID     string // CNPJ/NIT según país
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
