/* phpserial.go
 * Contains a decoder for PHP's serialize() format, which the DeWIS interface returns for format=array requests.
 * Supported tokens: a (array), s (string), i (int), d (float), b (bool) and N (null). Arrays decode to
 * map[string]any with every key converted to a string.
 */

package external

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

type phpDecoder struct {
	data []byte
	pos  int
}

// unserializePHP decodes a single serialized PHP value
// Preconditions: Receives the raw serialized bytes
// Postconditions: Returns the decoded value, or an error if the input is malformed or has trailing data
func unserializePHP(data []byte) (any, error) {
	d := &phpDecoder{data: bytes.TrimSpace(data)}
	value, err := d.value()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, fmt.Errorf("unexpected trailing data at offset %d", d.pos)
	}
	return value, nil
}

func (d *phpDecoder) value() (any, error) {
	if d.pos >= len(d.data) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	token := d.data[d.pos]
	switch token {
	case 'N':
		if err := d.expect("N;"); err != nil {
			return nil, err
		}
		return nil, nil
	case 'b':
		raw, err := d.scalar("b:")
		if err != nil {
			return nil, err
		}
		return raw == "1", nil
	case 'i':
		raw, err := d.scalar("i:")
		if err != nil {
			return nil, err
		}
		number, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q at offset %d", raw, d.pos)
		}
		return number, nil
	case 'd':
		raw, err := d.scalar("d:")
		if err != nil {
			return nil, err
		}
		number, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q at offset %d", raw, d.pos)
		}
		return number, nil
	case 's':
		return d.str()
	case 'a':
		return d.array()
	default:
		return nil, fmt.Errorf("unsupported token %q at offset %d", token, d.pos)
	}
}

func (d *phpDecoder) expect(prefix string) error {
	if !bytes.HasPrefix(d.data[d.pos:], []byte(prefix)) {
		return fmt.Errorf("expected %q at offset %d", prefix, d.pos)
	}
	d.pos += len(prefix)
	return nil
}

// until reads up to (not including) the delimiter and consumes the delimiter
func (d *phpDecoder) until(delim byte) (string, error) {
	end := bytes.IndexByte(d.data[d.pos:], delim)
	if end < 0 {
		return "", fmt.Errorf("missing %q after offset %d", delim, d.pos)
	}
	raw := string(d.data[d.pos : d.pos+end])
	d.pos += end + 1
	return raw, nil
}

func (d *phpDecoder) scalar(prefix string) (string, error) {
	if err := d.expect(prefix); err != nil {
		return "", err
	}
	return d.until(';')
}

func (d *phpDecoder) length() (int, error) {
	raw, err := d.until(':')
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid length %q at offset %d", raw, d.pos)
	}
	return n, nil
}

func (d *phpDecoder) str() (string, error) {
	if err := d.expect("s:"); err != nil {
		return "", err
	}
	n, err := d.length()
	if err != nil {
		return "", err
	}
	if err := d.expect(`"`); err != nil {
		return "", err
	}
	if d.pos+n > len(d.data) {
		return "", fmt.Errorf("string of length %d overruns input at offset %d", n, d.pos)
	}
	s := string(d.data[d.pos : d.pos+n])
	d.pos += n
	if err := d.expect(`";`); err != nil {
		return "", err
	}
	return s, nil
}

func (d *phpDecoder) array() (map[string]any, error) {
	if err := d.expect("a:"); err != nil {
		return nil, err
	}
	n, err := d.length()
	if err != nil {
		return nil, err
	}
	if err := d.expect("{"); err != nil {
		return nil, err
	}
	// The smallest element ("i:0;N;") takes more than 4 bytes
	if n > (len(d.data)-d.pos)/4 {
		return nil, fmt.Errorf("array of %d elements overruns input at offset %d", n, d.pos)
	}

	result := make(map[string]any, n)
	for i := 0; i < n; i++ {
		key, err := d.value()
		if err != nil {
			return nil, err
		}
		var k string
		switch typed := key.(type) {
		case string:
			k = typed
		case int64:
			k = strconv.FormatInt(typed, 10)
		default:
			return nil, fmt.Errorf("invalid array key type %T at offset %d", key, d.pos)
		}
		value, err := d.value()
		if err != nil {
			return nil, err
		}
		result[k] = value
	}

	if err := d.expect("}"); err != nil {
		return nil, err
	}
	return result, nil
}

// phpList returns the values of a decoded array ordered by their keys. Numeric keys sort numerically and come
// before non numeric keys. Anything that is not an array yields nil.
func phpList(value any) []any {
	array, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(array))
	for k := range array {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})

	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = array[k]
	}
	return values
}

// phpString converts a decoded scalar into an optional string. Arrays, nulls and booleans are treated as absent.
func phpString(value any) *string {
	var s string
	switch typed := value.(type) {
	case string:
		s = typed
	case int64:
		s = strconv.FormatInt(typed, 10)
	case float64:
		s = strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return nil
	}
	return &s
}
