package conv

import (
	"math"
	"reflect"
	"strconv"

	"github.com/viant/dynajson/dtoa"
	"github.com/viant/dynajson/tree"
)

// assignScalar converts a True, False, Number or String node into dest,
// changing representation when dest is not the natural kind.
func assignScalar(src *tree.Value, dest reflect.Value) error {
	switch dest.Kind() {
	case reflect.String:
		return convertToString(src, dest)
	case reflect.Bool:
		return convertToBool(src, dest)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return convertToInt(src, dest)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return convertToUint(src, dest)
	case reflect.Float32, reflect.Float64:
		return convertToFloat(src, dest)
	}
	return &CastError{From: src.Type(), To: dest.Type()}
}

func convertToString(src *tree.Value, dest reflect.Value) error {
	switch src.Type() {
	case tree.TypeString:
		dest.SetString(src.Text())
	case tree.TypeTrue:
		dest.SetString("true")
	case tree.TypeFalse:
		dest.SetString("false")
	case tree.TypeNumber:
		dest.SetString(dtoa.Format(src.Float()))
	default:
		return &CastError{From: src.Type(), To: dest.Type()}
	}
	return nil
}

func convertToBool(src *tree.Value, dest reflect.Value) error {
	switch src.Type() {
	case tree.TypeTrue, tree.TypeFalse:
		dest.SetBool(src.Bool())
	case tree.TypeNumber:
		dest.SetBool(src.Float() != 0)
	case tree.TypeString:
		b, err := strconv.ParseBool(src.Text())
		if err != nil {
			return &ConvertError{From: src.Type(), To: dest.Type(), Err: err}
		}
		dest.SetBool(b)
	default:
		return &CastError{From: src.Type(), To: dest.Type()}
	}
	return nil
}

func convertToInt(src *tree.Value, dest reflect.Value) error {
	bits := dest.Type().Bits()
	switch src.Type() {
	case tree.TypeTrue:
		dest.SetInt(1)
	case tree.TypeFalse:
		dest.SetInt(0)
	case tree.TypeNumber:
		n, ok := roundInt(src.Float(), bits)
		if !ok {
			return &ConvertError{From: src.Type(), To: dest.Type(), Err: strconv.ErrRange}
		}
		dest.SetInt(n)
	case tree.TypeString:
		n, err := strconv.ParseInt(src.Text(), 10, bits)
		if err != nil {
			return &ConvertError{From: src.Type(), To: dest.Type(), Err: err}
		}
		dest.SetInt(n)
	default:
		return &CastError{From: src.Type(), To: dest.Type()}
	}
	return nil
}

func convertToUint(src *tree.Value, dest reflect.Value) error {
	bits := dest.Type().Bits()
	switch src.Type() {
	case tree.TypeTrue:
		dest.SetUint(1)
	case tree.TypeFalse:
		dest.SetUint(0)
	case tree.TypeNumber:
		n, ok := roundUint(src.Float(), bits)
		if !ok {
			return &ConvertError{From: src.Type(), To: dest.Type(), Err: strconv.ErrRange}
		}
		dest.SetUint(n)
	case tree.TypeString:
		n, err := strconv.ParseUint(src.Text(), 10, bits)
		if err != nil {
			return &ConvertError{From: src.Type(), To: dest.Type(), Err: err}
		}
		dest.SetUint(n)
	default:
		return &CastError{From: src.Type(), To: dest.Type()}
	}
	return nil
}

func convertToFloat(src *tree.Value, dest reflect.Value) error {
	switch src.Type() {
	case tree.TypeNumber:
		dest.SetFloat(src.Float())
	case tree.TypeTrue:
		dest.SetFloat(1)
	case tree.TypeFalse:
		dest.SetFloat(0)
	case tree.TypeString:
		f, err := strconv.ParseFloat(src.Text(), dest.Type().Bits())
		if err != nil {
			return &ConvertError{From: src.Type(), To: dest.Type(), Err: err}
		}
		dest.SetFloat(f)
	default:
		return &CastError{From: src.Type(), To: dest.Type()}
	}
	return nil
}

// roundInt rounds half to even and reports whether the result fits a
// signed integer of the given width.
func roundInt(f float64, bits int) (int64, bool) {
	r := math.RoundToEven(f)
	if math.IsNaN(r) {
		return 0, false
	}
	limit := math.Ldexp(1, bits-1)
	if r < -limit || r >= limit {
		return 0, false
	}
	return int64(r), true
}

func roundUint(f float64, bits int) (uint64, bool) {
	r := math.RoundToEven(f)
	if math.IsNaN(r) || r < 0 || r >= math.Ldexp(1, bits) {
		return 0, false
	}
	return uint64(r), true
}
