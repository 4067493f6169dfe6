package nodetree

// Schema declares the expected children of a node: which tags are
// required, which are optional, and which may repeat. It is a fluent
// builder in the same spirit as a SQL table schema builder — declare the
// shape once, then [Schema.Bind] it against an actual child list.
type Schema struct {
	fields []schemaField
}

type schemaField struct {
	tag      Tag
	required bool
	repeated bool
}

// NewSchema starts an empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// Required declares that exactly one child with tag must be present.
func (s *Schema) Required(tag Tag) *Schema {
	s.fields = append(s.fields, schemaField{tag: tag, required: true})

	return s
}

// Optional declares that at most one child with tag may be present.
func (s *Schema) Optional(tag Tag) *Schema {
	s.fields = append(s.fields, schemaField{tag: tag})

	return s
}

// Repeated declares that zero or more children with tag may be present.
func (s *Schema) Repeated(tag Tag) *Schema {
	s.fields = append(s.fields, schemaField{tag: tag, repeated: true})

	return s
}

// Children is the result of binding a [Schema] against an actual child
// list: each declared tag mapped to the headers that matched it.
type Children struct {
	byTag map[Tag][]Header
}

// One returns the first header bound to tag, or false if none was. It is
// meant for tags declared [Schema.Required] or [Schema.Optional]; it does
// not check how tag was declared, and for a [Schema.Repeated] tag it
// returns only the first match rather than panicking.
func (c Children) One(tag Tag) (Header, bool) {
	headers := c.byTag[tag]
	if len(headers) == 0 {
		return Header{}, false
	}

	return headers[0], true
}

// All returns every header bound to tag, in document order.
func (c Children) All(tag Tag) []Header {
	return c.byTag[tag]
}

// Bind matches children against the schema, enforcing cardinality.
//
// Returns [*MissingChildError] if a required tag has no match,
// [*DuplicateChildError] if a required-or-optional tag matches more than
// once, or [*UnexpectedChildError] for any child whose tag the schema
// never declared.
func (s *Schema) Bind(children []Header) (Children, error) {
	declared := make(map[Tag]schemaField, len(s.fields))
	for _, f := range s.fields {
		declared[f.tag] = f
	}

	byTag := make(map[Tag][]Header)

	for _, child := range children {
		field, ok := declared[child.Tag]
		if !ok {
			return Children{}, &UnexpectedChildError{Tag: child.Tag}
		}

		byTag[child.Tag] = append(byTag[child.Tag], child)

		if !field.repeated && len(byTag[child.Tag]) > 1 {
			return Children{}, &DuplicateChildError{Tag: child.Tag}
		}
	}

	for _, f := range s.fields {
		if f.required && len(byTag[f.tag]) == 0 {
			return Children{}, &MissingChildError{Tag: f.tag}
		}
	}

	return Children{byTag: byTag}, nil
}
