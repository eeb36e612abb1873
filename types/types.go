// Package types defines the closed set of type names known to the script
// language, used both for static checking and for runtime values.
package types

// Type is the name of a script type.
type Type string

const (
	Integer    Type = "Integer"
	Float      Type = "Float"
	Boolean    Type = "Boolean"
	String     Type = "String"
	Array      Type = "Array"
	Dictionary Type = "Dictionary"
	Image      Type = "Image"
	Color      Type = "Color"

	// Any matches every type. It is only used in built-in signatures.
	Any Type = "Any"
	// Unknown is the type of a name whose type cannot be determined
	// statically. It may later be refined once to a concrete type.
	Unknown Type = "Unknown"
)

// castable lists the types that may appear after "as".
var castable = map[string]Type{
	"Integer":    Integer,
	"Float":      Float,
	"String":     String,
	"Boolean":    Boolean,
	"Array":      Array,
	"Dictionary": Dictionary,
}

// ParseCastTarget returns the type named by a cast clause.
func ParseCastTarget(name string) (Type, bool) {
	t, ok := castable[name]
	return t, ok
}

// IsConcrete returns true if the type is neither Any nor Unknown.
func (t Type) IsConcrete() bool {
	return t != Any && t != Unknown && t != ""
}

// IsNumeric returns true for Integer and Float.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Float
}

// Accepts reports whether a value of type got may be passed where t is
// expected. Any accepts everything, and an undeterminable type is accepted
// anywhere since it can only be checked at runtime.
func (t Type) Accepts(got Type) bool {
	if t == Any || !got.IsConcrete() {
		return true
	}
	return t == got
}

func (t Type) String() string {
	return string(t)
}
