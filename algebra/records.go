package algebra

import (
	"math"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/optmodel/internal/sentinel"
)

// Records bridge: host values become labeled records through cty's type
// implication, so []string, []int, [][]string, maps and plain numbers all
// normalize through one path instead of a thicket of reflection switches.

// hostToCty lifts an arbitrary host value into a cty value.
func hostToCty(data any) (cty.Value, error) {
	if v, ok := data.(cty.Value); ok {
		return v, nil
	}
	ty, err := gocty.ImpliedType(data)
	if err != nil {
		return cty.NilVal, typeErrorf("unsupported records value of type %T: %v", data, err)
	}
	val, err := gocty.ToCtyValue(data, ty)
	if err != nil {
		return cty.NilVal, typeErrorf("unsupported records value of type %T: %v", data, err)
	}
	return val, nil
}

// ctyLabel converts one element to a label string; numeric labels convert
// through cty so that 1985 and "1985" are the same label.
func ctyLabel(v cty.Value) (string, error) {
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", typeErrorf("record label %v is not convertible to a string", v)
	}
	if conv.IsNull() {
		return "", typeErrorf("record label must not be null")
	}
	return conv.AsString(), nil
}

// ctyNumber converts one element to a float64 payload. String spellings of
// the runtime's special values (inf, -inf, na, eps, undf) are recognized and
// mapped onto their sentinel encodings.
func ctyNumber(v cty.Value) (float64, error) {
	if v.Type() == cty.String && !v.IsNull() {
		switch v.AsString() {
		case "inf", "+inf":
			return sentinel.Encode(sentinel.PosInf), nil
		case "-inf":
			return sentinel.Encode(sentinel.NegInf), nil
		case "na":
			return sentinel.Encode(sentinel.NA), nil
		case "eps":
			return sentinel.Encode(sentinel.Eps), nil
		case "undf":
			return sentinel.Encode(sentinel.Undef), nil
		}
	}
	conv, err := convert.Convert(v, cty.Number)
	if err != nil || conv.IsNull() {
		return 0, typeErrorf("record value %v is not numeric", v)
	}
	f, _ := conv.AsBigFloat().Float64()
	return f, nil
}

// toLabelTuples normalizes host data into label tuples of the given
// dimension: a flat list yields one-label tuples, nested lists yield full
// tuples, and a bare string or number yields a single tuple. Heterogeneous
// []any rows are lifted cell by cell; cty implies the type of everything
// else as a whole.
func toLabelTuples(data any, dim int) ([][]string, error) {
	switch rows := data.(type) {
	case []any:
		var tuples [][]string
		for _, row := range rows {
			tuple, err := anyTuple(row, dim)
			if err != nil {
				return nil, err
			}
			tuples = append(tuples, tuple)
		}
		return tuples, nil
	case [][]any:
		var tuples [][]string
		for _, row := range rows {
			tuple, err := anyTuple(row, dim)
			if err != nil {
				return nil, err
			}
			tuples = append(tuples, tuple)
		}
		return tuples, nil
	}

	val, err := hostToCty(data)
	if err != nil {
		return nil, err
	}

	if !val.CanIterateElements() {
		if dim != 1 {
			return nil, validationf("set records need %d labels per tuple, got a scalar value", dim)
		}
		label, err := ctyLabel(val)
		if err != nil {
			return nil, err
		}
		return [][]string{{label}}, nil
	}

	var tuples [][]string
	for it := val.ElementIterator(); it.Next(); {
		_, el := it.Element()
		var tuple []string
		if el.CanIterateElements() {
			for inner := el.ElementIterator(); inner.Next(); {
				_, lv := inner.Element()
				label, err := ctyLabel(lv)
				if err != nil {
					return nil, err
				}
				tuple = append(tuple, label)
			}
		} else {
			label, err := ctyLabel(el)
			if err != nil {
				return nil, err
			}
			tuple = []string{label}
		}
		if len(tuple) != dim {
			return nil, validationf(
				"set records need %d labels per tuple, got %d in %v", dim, len(tuple), tuple)
		}
		tuples = append(tuples, tuple)
	}
	return tuples, nil
}

// toParameterRecords normalizes host data into labeled numeric records. A
// scalar parameter takes a single number; dimensioned parameters take rows
// of dim labels plus one value, or (for one dimension) a label-to-value
// mapping iterated in cty's stable key order.
func toParameterRecords(data any, dim int) ([]ParameterRecord, error) {
	if f, ok := asFloat(data); ok {
		if dim != 0 {
			return nil, validationf("parameter records need %d labels per row, got a bare number", dim)
		}
		return []ParameterRecord{{Value: f}}, nil
	}

	if rows, ok := anyRows(data); ok {
		var records []ParameterRecord
		for _, row := range rows {
			cells, ok := row.([]any)
			if !ok {
				return nil, validationf("parameter record rows need %d labels plus a value", dim)
			}
			if len(cells) != dim+1 {
				return nil, validationf(
					"parameter record rows need %d labels plus a value, got %d cells", dim, len(cells))
			}
			key := make([]string, dim)
			for i := 0; i < dim; i++ {
				cell, err := hostToCty(cells[i])
				if err != nil {
					return nil, err
				}
				label, err := ctyLabel(cell)
				if err != nil {
					return nil, err
				}
				key[i] = label
			}
			cell, err := hostToCty(cells[dim])
			if err != nil {
				return nil, err
			}
			f, err := ctyNumber(cell)
			if err != nil {
				return nil, err
			}
			records = append(records, ParameterRecord{Key: key, Value: f})
		}
		return records, nil
	}

	if m, ok := data.(map[string]any); ok {
		if dim != 1 {
			return nil, validationf("label-to-value records fit one-dimensional parameters only, dimension is %d", dim)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		records := make([]ParameterRecord, 0, len(m))
		for _, k := range keys {
			cell, err := hostToCty(m[k])
			if err != nil {
				return nil, err
			}
			f, err := ctyNumber(cell)
			if err != nil {
				return nil, err
			}
			records = append(records, ParameterRecord{Key: []string{k}, Value: f})
		}
		return records, nil
	}

	val, err := hostToCty(data)
	if err != nil {
		return nil, err
	}

	if dim == 0 {
		f, err := ctyNumber(val)
		if err != nil {
			return nil, err
		}
		return []ParameterRecord{{Value: f}}, nil
	}

	if !val.CanIterateElements() {
		return nil, typeErrorf("parameter records must be iterable rows, got %T", data)
	}

	var records []ParameterRecord
	if val.Type().IsObjectType() || val.Type().IsMapType() {
		if dim != 1 {
			return nil, validationf("label-to-value records fit one-dimensional parameters only, dimension is %d", dim)
		}
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			label, err := ctyLabel(k)
			if err != nil {
				return nil, err
			}
			f, err := ctyNumber(v)
			if err != nil {
				return nil, err
			}
			records = append(records, ParameterRecord{Key: []string{label}, Value: f})
		}
		return records, nil
	}

	for it := val.ElementIterator(); it.Next(); {
		_, row := it.Element()
		if !row.CanIterateElements() {
			return nil, validationf("parameter record rows need %d labels plus a value", dim)
		}
		var cells []cty.Value
		for inner := row.ElementIterator(); inner.Next(); {
			_, cell := inner.Element()
			cells = append(cells, cell)
		}
		if len(cells) != dim+1 {
			return nil, validationf(
				"parameter record rows need %d labels plus a value, got %d cells", dim, len(cells))
		}
		key := make([]string, dim)
		for i := 0; i < dim; i++ {
			label, err := ctyLabel(cells[i])
			if err != nil {
				return nil, err
			}
			key[i] = label
		}
		f, err := ctyNumber(cells[dim])
		if err != nil {
			return nil, err
		}
		records = append(records, ParameterRecord{Key: key, Value: f})
	}
	return records, nil
}

// anyTuple lifts one []any row (or a bare cell) into a label tuple.
func anyTuple(row any, dim int) ([]string, error) {
	cells, ok := row.([]any)
	if !ok {
		cells = []any{row}
	}
	if len(cells) != dim {
		return nil, validationf("set records need %d labels per tuple, got %d in %v", dim, len(cells), cells)
	}
	tuple := make([]string, len(cells))
	for i, c := range cells {
		cv, err := hostToCty(c)
		if err != nil {
			return nil, err
		}
		label, err := ctyLabel(cv)
		if err != nil {
			return nil, err
		}
		tuple[i] = label
	}
	return tuple, nil
}

// anyRows recognizes the heterogeneous row shapes ([]any of rows, [][]any).
func anyRows(data any) ([]any, bool) {
	switch rows := data.(type) {
	case []any:
		return rows, true
	case [][]any:
		out := make([]any, len(rows))
		for i, r := range rows {
			out[i] = r
		}
		return out, true
	}
	return nil, false
}

func asFloat(data any) (float64, bool) {
	switch x := data.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// Inf returns the runtime's +infinity or -infinity payload.
func Inf(sign int) float64 {
	if sign < 0 {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// NA returns the runtime's not-available payload.
func NA() float64 { return sentinel.Encode(sentinel.NA) }

// Eps returns the runtime's epsilon payload.
func Eps() float64 { return sentinel.Encode(sentinel.Eps) }
