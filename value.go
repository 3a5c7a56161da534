package kson

// ValueKind identifies the shape of a Value.
type ValueKind int

const (
	ValueObject ValueKind = iota
	ValueList
	ValueString
	ValueNumber
	ValueBool
	ValueNull
	ValueEmbed
	ValueError
)

// Location carries a node's source range through the value tree, reused
// unchanged for every entry point that needs to map a value back to text
// (format, schema location services).
type Location struct {
	Range Range
}

// Member is one ordered (key, value) pair of an Object. Keys are not
// deduplicated: a repeated key produces two Members in source order.
type Member struct {
	Key              string
	KeyLocation      Location
	Value            *Value
	LeadingComments  []string
	TrailingComments []string
}

// Embed is the lowered form of an embed block.
type Embed struct {
	Tag       *string
	Metadata  *string
	Content   string
	Delimiter rune
	DelimLen  int
}

// Value is the typed sum-type node of the lowered document tree. Exactly
// one of the Kind-tagged fields is meaningful for any given node.
type Value struct {
	Kind     ValueKind
	Location Location

	Object *ObjectValue
	List   []*Value
	Str    string
	Num    Number
	Bool   bool
	Embed  *Embed

	ErrorMessage string

	LeadingComments  []string
	TrailingComments []string
}

// ObjectValue is an ordered sequence of Members plus an optional lookup
// index. Lookups return the FIRST match in source order — callers that
// need every occurrence of a repeated key should walk Members directly.
type ObjectValue struct {
	Members  []Member
	index    map[string]int
}

func newObjectValue(members []Member) *ObjectValue {
	idx := make(map[string]int, len(members))
	for i, m := range members {
		if _, exists := idx[m.Key]; !exists {
			idx[m.Key] = i
		}
	}
	return &ObjectValue{Members: members, index: idx}
}

// Get returns the value of the first member with the given key.
func (o *ObjectValue) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.Members[i].Value, true
}

// Has reports whether key appears at least once.
func (o *ObjectValue) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Keys returns member keys in source order (including duplicates).
func (o *ObjectValue) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

func tokenCommentText(t Token) string {
	return t.Text
}
