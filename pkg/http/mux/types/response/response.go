package response

type HeaderEntry struct {
	Name  string
	Value string
}

type Response struct {
	StatusCode int
	Headers    []*HeaderEntry
	Body       []byte
}

func (response *Response) GetHeader(name string) string {
	if response == nil {
		return ""
	}

	for _, header := range response.Headers {
		if header != nil && header.Name == name {
			return header.Value
		}
	}
	return ""
}
