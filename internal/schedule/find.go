package schedule

// Keys under which the provider publishes the two schedule documents.
const (
	DailyScheduleKey    = "dailySchedule"
	TomorrowScheduleKey = "tomorrowSchedule"
)

// Find locates the first value bound to key anywhere in doc.
//
// The walk is depth-first: an object holding key answers immediately,
// otherwise its values are searched in document order, then array elements
// in order. Scalars never match. Where the key sits in the document is
// irrelevant, so the provider can move it between page revisions without
// breaking us. Subtrees deeper than MaxDepth are treated as not found.
func Find(doc Value, key string) (Value, bool) {
	return find(doc, key, 0)
}

func find(v Value, key string, depth int) (Value, bool) {
	if depth > MaxDepth {
		return Value{}, false
	}
	switch v.kind {
	case Object:
		if found, ok := v.Get(key); ok {
			return found, true
		}
		for _, m := range v.members {
			if found, ok := find(m.Value, key, depth+1); ok {
				return found, true
			}
		}
	case Array:
		for _, item := range v.items {
			if found, ok := find(item, key, depth+1); ok {
				return found, true
			}
		}
	}
	return Value{}, false
}
