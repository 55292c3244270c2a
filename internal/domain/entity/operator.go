package entity

// Roles válidos para Operator.
const (
	RoleOperator = "operador" // puede cargar archivos y cambiar la ubicación de respaldo
	RoleViewer   = "consulta"
)

// Operator usuario que administra la lista cargada. Se define por configuración
// (no hay registro de usuarios).
type Operator struct {
	Username     string
	PasswordHash string // bcrypt
	Role         string
}
