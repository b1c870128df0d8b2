package shortener

import "encoding/json"

// Response is the JSON document returned by dwz-style create endpoints.
//
//	{"tinyurl":"http://dwz.cn/cTGri","status":0,"longurl":"http://...","err_msg":""}
//	{"status":-1,"err_msg":"网址不能为空","longurl":""}
type Response struct {
	// Status is nil when the field is absent, which counts as non-zero.
	Status  *int   `json:"status"`
	ErrMsg  string `json:"err_msg"`
	TinyURL string `json:"tinyurl"`
	LongURL string `json:"longurl"`
}

// Interpret turns a raw response body into a short URL or one of the package
// errors. The checks run in a fixed order and the first match wins, so a
// service error message takes precedence over a missing short URL.
func Interpret(body []byte, service string) (string, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", &EmptyResponseError{Service: service, Err: err}
	}
	if !truthy(raw) {
		return "", &EmptyResponseError{Service: service}
	}

	// A truthy value that is not an object has none of the fields.
	var resp Response
	if _, ok := raw.(map[string]any); ok {
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", &EmptyResponseError{Service: service, Err: err}
		}
	}

	if resp.failed() && resp.ErrMsg != "" {
		status := -1
		if resp.Status != nil {
			status = *resp.Status
		}
		return "", &ServiceError{Status: status, Message: resp.ErrMsg}
	}

	if resp.TinyURL == "" {
		return "", ErrEmptyShortURL
	}
	return resp.TinyURL, nil
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

func (r Response) failed() bool {
	return r.Status == nil || *r.Status != 0
}
