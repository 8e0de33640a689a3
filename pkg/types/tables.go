package types

// Standard table names for Cupboard.GetTable.
const (
	CaregiversTable = "caregivers"
	ChildrenTable   = "children"
	WordsTable      = "words"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	CaregiversTable,
	ChildrenTable,
	WordsTable,
}
