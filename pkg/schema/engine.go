package schema

import "sort"

// drive evaluates one schema Document against the instance described by
// ctx, implementing spec.md §4.1 "Validate(instance)" steps 1-5.
func drive(doc *Document, ctx *Context) *Result {
	if doc.BoolForm != nil {
		return &Result{
			Keyword:          "",
			InstanceLocation: ctx.InstanceLocation,
			RelativeLocation: ctx.RelativeLocation,
			AbsoluteLocation: ctx.absoluteLocation(),
			IsValid:          *doc.BoolForm,
		}
	}

	if doc.Keywords == nil || doc.Keywords.Len() == 0 {
		return &Result{
			Keyword:          "",
			InstanceLocation: ctx.InstanceLocation,
			RelativeLocation: ctx.RelativeLocation,
			AbsoluteLocation: ctx.absoluteLocation(),
			IsValid:          true,
		}
	}

	type ordered struct {
		name string
		kw   Keyword
		seq  int
		pos  int
	}
	items := make([]ordered, 0, doc.Keywords.Len())
	pos := 0
	for pair := doc.Keywords.Oldest(); pair != nil; pair = pair.Next() {
		seq := 1 << 20 // unknown annotations and anything without a sequence run last, harmlessly
		if _, ok := pair.Value.(*UnknownAnnotation); !ok {
			seq = pair.Value.EvaluationSequence()
		}
		items = append(items, ordered{name: pair.Key, kw: pair.Value, seq: seq, pos: pos})
		pos++
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].seq < items[j].seq })

	out := &Result{
		InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation,
		AbsoluteLocation: ctx.absoluteLocation(),
		IsValid:          true,
	}

	// Before 2019-09 a $ref replaces its sibling keywords: they stay parsed
	// (so pointers can still reach into them) but are not evaluated.
	refOnly := false
	if doc.Draft != Draft2019 {
		_, refOnly = doc.Keywords.Get("$ref")
	}

	flagMode := ctx.Options.OutputFormat == OutputFlag
	for _, it := range items {
		if refOnly && it.name != "$ref" {
			continue
		}
		if !vocabularyEnabled(doc, it.kw.Vocabulary()) {
			continue
		}
		res := it.kw.Validate(ctx)
		if res == nil {
			continue
		}
		out.Nested = append(out.Nested, res)
		if !res.AllValid() {
			out.IsValid = false
			if flagMode {
				return out
			}
		}
	}
	return out
}

// vocabularyEnabled implements spec.md §8 property 6: a keyword whose
// vocabulary is disabled in the active meta-schema's $vocabulary map must
// not affect is_valid. Only 2019-09 gates vocabularies; earlier drafts run
// every matched keyword.
func vocabularyEnabled(doc *Document, v Vocabulary) bool {
	if doc.Draft != Draft2019 || doc.VocabularyMap == nil {
		return true
	}
	uri, known := defaultVocabularyURIs[v]
	if !known {
		return true
	}
	enabled, present := doc.VocabularyMap[uri]
	if !present {
		return true
	}
	return enabled
}
