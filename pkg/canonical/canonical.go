// Package canonical serializa mapas de atributos a una representación JSON determinista.
//
// Reglas (versión 1):
//   - claves de objeto ordenadas byte a byte, en todos los niveles;
//   - sin espacios;
//   - enteros en base 10; flotantes con strconv 'f' y precisión mínima (NaN/Inf no permitidos);
//   - decimal.Decimal como string en su forma normalizada (sin ceros a la derecha);
//   - time.Time en UTC, ISO-8601 con milisegundos: 2006-01-02T15:04:05.000Z.
//
// Dos mapas con el mismo conjunto clave→valor producen exactamente los mismos bytes,
// sin importar el orden de inserción. Cambiar estas reglas rompe la compatibilidad de hashes.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout formato fijo de instantes dentro de la codificación canónica.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// ErrUnsupportedValue valor que no tiene representación canónica.
var ErrUnsupportedValue = errors.New("canonical: valor no soportado")

// Marshaler lo implementan los tipos que saben reducirse a valores soportados.
type Marshaler interface {
	CanonicalValue() any
}

// Encode devuelve los bytes canónicos del mapa.
func Encode(v map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, "$"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTime formatea un instante con TimeLayout (siempre en UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func encodeValue(buf *bytes.Buffer, v any, path string) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		return encodeString(buf, x)
	case int:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(x, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(x, 10))
	case float32:
		return encodeFloat(buf, float64(x), path)
	case float64:
		return encodeFloat(buf, x, path)
	case decimal.Decimal:
		return encodeString(buf, x.String())
	case time.Time:
		return encodeString(buf, FormatTime(x))
	case map[string]any:
		return encodeObject(buf, x, path)
	case map[string]string:
		m := make(map[string]any, len(x))
		for k, s := range x {
			m[k] = s
		}
		return encodeObject(buf, m, path)
	case []any:
		return encodeArray(buf, x, path)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return encodeArray(buf, items, path)
	case Marshaler:
		return encodeValue(buf, x.CanonicalValue(), path)
	default:
		return fmt.Errorf("%w: %T en %s", ErrUnsupportedValue, v, path)
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, m map[string]any, path string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, m[k], path+"."+k); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, items []any, path string) error {
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeFloat(buf *bytes.Buffer, f float64, path string) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: número no finito en %s", ErrUnsupportedValue, path)
	}
	buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// encodeString usa el escape JSON estándar pero sin escapar <, > y &.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
