package schedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) Value {
	t.Helper()
	v, err := Parse([]byte(raw))
	require.NoError(t, err, "Parse must not error")
	return v
}

func TestFind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		key   string
		want  float64
		found bool
	}{
		{name: "top level key", doc: `{"x": 1}`, key: "x", want: 1, found: true},
		{name: "parent wins over children", doc: `{"a": {"x": 1}, "x": 2}`, key: "x", want: 2, found: true},
		{name: "first sibling wins", doc: `{"a": {"x": 1}, "b": {"x": 2}}`, key: "x", want: 1, found: true},
		{name: "depth first before later siblings", doc: `{"a": {"b": {"x": 1}}, "c": {"x": 2}}`, key: "x", want: 1, found: true},
		{name: "array elements in order", doc: `[{"y": 0}, {"x": 3}, {"x": 4}]`, key: "x", want: 3, found: true},
		{name: "object inside array inside object", doc: `{"components": [{"t": "a"}, {"deep": [[{"x": 5}]]}]}`, key: "x", want: 5, found: true},
		{name: "missing key", doc: `{"a": {"b": [1, 2, {"c": 3}]}}`, key: "x"},
		{name: "scalar root", doc: `42`, key: "x"},
		{name: "key as string value does not match", doc: `{"a": "x", "b": ["x"]}`, key: "x"},
	}

	for _, tt := range tests {
		_ = t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Find(mustParse(t, tt.doc), tt.key)
			require.Equal(t, tt.found, ok)
			if !tt.found {
				assert.True(t, got.IsAbsent(), "not found must yield an absent value")
				return
			}
			n, ok := got.AsNumber()
			require.True(t, ok, "found value must be a number")
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFindReturnsSubDocument(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"page": [{"dailySchedule": {"kiev": {"today": {}}}}, {"tomorrowSchedule": null}]}`)

	daily, ok := Find(doc, DailyScheduleKey)
	require.True(t, ok)
	require.Equal(t, Object, daily.Kind())
	_, ok = daily.Get("kiev")
	assert.True(t, ok)

	tomorrow, ok := Find(doc, TomorrowScheduleKey)
	require.True(t, ok, "a key bound to null is still found")
	assert.Equal(t, Null, tomorrow.Kind())
}

func TestFindAbsentDocument(t *testing.T) {
	t.Parallel()

	_, ok := Find(Value{}, DailyScheduleKey)
	assert.False(t, ok)
}

func TestFindDepthGuard(t *testing.T) {
	t.Parallel()

	v := NewObject(Member{Key: "x", Value: NewNumber(1)})
	for i := 0; i < MaxDepth+5; i++ {
		v = NewArray(v)
	}
	_, ok := Find(v, "x")
	assert.False(t, ok, "matches below MaxDepth must be ignored")

	shallow := NewArray(NewArray(NewObject(Member{Key: "x", Value: NewNumber(1)})))
	_, ok = Find(shallow, "x")
	assert.True(t, ok)
}

func TestParseKeepsKeyOrder(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"tomorrow": 2, "today": 1, "yesterday": 0}`)
	members, ok := v.Members()
	require.True(t, ok)
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.Key
	}
	assert.Equal(t, []string{"tomorrow", "today", "yesterday"}, keys)
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"s": "24.11.2024 на неділю", "n": 13.5, "b": true, "z": null, "a": [1, "two"], "\u043a\u0438\u0457\u0432": {}}`)

	s, _ := v.Get("s")
	str, ok := s.AsString()
	require.True(t, ok)
	assert.Equal(t, "24.11.2024 на неділю", str)

	n, _ := v.Get("n")
	num, ok := n.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 13.5, num)

	b, _ := v.Get("b")
	boolean, ok := b.AsBool()
	require.True(t, ok)
	assert.True(t, boolean)

	z, ok := v.Get("z")
	require.True(t, ok)
	assert.Equal(t, Null, z.Kind())

	a, _ := v.Get("a")
	items, ok := a.Items()
	require.True(t, ok)
	assert.Len(t, items, 2)

	_, ok = v.Get("київ")
	assert.True(t, ok, "escaped keys must be decoded")
}

func TestAccessorsFailClosed(t *testing.T) {
	t.Parallel()

	v := NewString("x")
	_, ok := v.AsNumber()
	assert.False(t, ok)
	_, ok = v.Get("x")
	assert.False(t, ok)
	_, ok = v.Members()
	assert.False(t, ok)
	_, ok = v.Items()
	assert.False(t, ok)

	var absent Value
	_, ok = absent.AsString()
	assert.False(t, ok)
	assert.Equal(t, "absent", absent.Kind().String())
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"x": 1, "x": 2}`)
	x, ok := v.Get("x")
	require.True(t, ok)
	n, _ := x.AsNumber()
	assert.Equal(t, 2.0, n)
}

func TestParseBlankAndInvalid(t *testing.T) {
	t.Parallel()

	v, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())

	v, err = Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())

	_, err = Parse([]byte(`{"a": [1, 2`))
	assert.Error(t, err)
}

func TestParseTooDeep(t *testing.T) {
	t.Parallel()

	raw := strings.Repeat("[", MaxDepth+10) + strings.Repeat("]", MaxDepth+10)
	_, err := Parse([]byte(raw))
	assert.ErrorIs(t, err, ErrTooDeep)
}
