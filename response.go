package titanic

// StandardResponse is the API envelope: every endpoint answers with success
// flag, human message, data list, count and optional metadata.
type StandardResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Data     []any          `json:"data,omitempty"`
	Count    int            `json:"count"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SuccessResponse wraps data in the standard envelope. Single values are
// promoted to a one-element list so clients always receive an array.
func SuccessResponse(data any, message string) *StandardResponse {
	return SuccessResponseCount(data, message, -1, nil)
}

// SuccessResponseCount builds the envelope with an explicit count and
// metadata. A negative count means "use the data length".
func SuccessResponseCount(data any, message string, count int, metadata map[string]any) *StandardResponse {
	var list []any

	switch v := data.(type) {
	case nil:
	case []any:
		list = v
	default:
		list = []any{v}
	}

	if count < 0 {
		count = len(list)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	return &StandardResponse{
		Success:  true,
		Message:  message,
		Data:     list,
		Count:    count,
		Metadata: metadata,
	}
}

// AsList converts a typed slice into the envelope's data list.
func AsList[T any](items []T) []any {
	list := make([]any, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}
	return list
}

// ErrorResponse builds the failure envelope.
func ErrorResponse(message string) *StandardResponse {
	return &StandardResponse{
		Success: false,
		Message: message,
		Count:   0,
	}
}
