package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONMember is a single object member: one key/value pair in the order
// it appeared in the document.
type JSONMember struct {
	Key   string
	Value JSONValue
}

// JSONMembers represents a JSON object with its member order preserved.
// The decoder produces this form instead of JSONObject when the caller
// disables associative decoding.
type JSONMembers []JSONMember

// Get returns the value for the first member with the given key.
func (m JSONMembers) Get(key string) (JSONValue, bool) {
	for _, member := range m {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}
