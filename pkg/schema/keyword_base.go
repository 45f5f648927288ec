package schema

import "github.com/dlovans/verita/internal/pointer"

// leaf is embedded by keywords with no subschemas of their own (most
// Validation-vocabulary keywords): RegisterSubschemas is a no-op and
// ResolveSubschema never matches. Applicator keywords override both.
type leaf struct{}

func (leaf) RegisterSubschemas(string, *Local) {}
func (leaf) ResolveSubschema(pointer.Pointer) (*Document, bool) { return nil, false }

// sequence numbers keywords are evaluated in, lowest first, ties broken by
// insertion order (spec.md §3/§4.1). Grouped so the cross-keyword
// annotation protocol (§4.1 table) always sees its producer run first.
const (
	seqCore          = 0  // $defs/definitions ($id, $anchor, $recursiveAnchor, $vocabulary are read by the parser and kept as unknown annotations)
	seqRef           = 10 // $ref, $recursiveRef
	seqType          = 20
	seqEnumConst     = 21
	seqNumeric       = 30
	seqString        = 40
	seqArrayBasic    = 50 // minItems, maxItems, uniqueItems
	seqItems         = 51
	seqAdditionalItems = 52
	seqContains      = 53
	seqMinMaxContains  = 54 // reads containsCount
	seqObjectBasic   = 60 // minProperties, maxProperties, required, propertyNames
	seqProperties    = 61
	seqPatternProperties = 62
	seqAdditionalProperties = 63
	seqDependencies  = 64
	seqCombinator    = 80 // allOf, anyOf, oneOf, not
	seqIf            = 90
	seqThenElse      = 91 // reads ifKeywordValid
	// unevaluatedItems/unevaluatedProperties read evaluated_items/
	// evaluated_properties, which allOf/anyOf/oneOf/if-then-else only merge
	// into the parent context once their own Validate returns (seq 80-91);
	// both must run after every other applicator to see the full picture.
	seqUnevaluatedItems = 92
	seqUnevaluatedProperties = 93
	seqFormat        = 100
	seqContent       = 101
	seqMetadata      = 110
)
