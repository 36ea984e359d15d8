package entity

// Status is the lifecycle flag shared by every persisted entity.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "inactive"
}

// Record is anything the unit of work knows how to insert.
type Record interface {
	TableName() string
}

// Keyed is a record with its own identifier. Join rows are not keyed.
type Keyed interface {
	Record
	PrimaryKey() string
}

// Dependent is a record that points at other rows by id and therefore
// has to be written after the rows it references.
type Dependent interface {
	Record
	References() []string
}
