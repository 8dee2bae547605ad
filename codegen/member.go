package codegen

// MemberKind classifies a direct member of an existing class.
type MemberKind int

const (
	FieldMember MemberKind = iota
	ConstructorMember
	FactoryMember
	MethodMember
)

func (k MemberKind) String() string {
	switch k {
	case FieldMember:
		return "field"
	case ConstructorMember:
		return "constructor"
	case FactoryMember:
		return "factory"
	case MethodMember:
		return "method"
	}
	return "unknown"
}

// IsBehavior reports whether the member is a constructor, factory or method.
func (k MemberKind) IsBehavior() bool {
	return k != FieldMember
}

// Member is one direct member of a class as reported by the source scanner.
// Constructors and factories are named "Class" or "Class.named".
type Member struct {
	Kind      MemberKind
	Name      string
	Signature string
	Static    bool
}

// DeclaredField is a simple instance field with its declared type text.
type DeclaredField struct {
	Name string
	Type string
}

// ClassSnapshot is the state of one existing class, captured once before planning.
type ClassSnapshot struct {
	Name        string
	Annotations []string
	Members     []Member
	Fields      []DeclaredField
}

// HasMember reports whether a member with the given name exists.
func (s *ClassSnapshot) HasMember(name string) bool {
	if s == nil {
		return false
	}
	for _, m := range s.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Snapshot maps class names to their captured state.
type Snapshot map[string]*ClassSnapshot

// Class returns the snapshot of name, or nil when the class does not exist.
func (s Snapshot) Class(name string) *ClassSnapshot {
	if s == nil {
		return nil
	}
	return s[name]
}
