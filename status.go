package console

// RequestStatus is the tri-state request lifecycle record shared by the
// session stores: idle, pending, success, or error. At most one of the three
// flags is true at any time; Message is set only alongside IsError or
// IsSuccess. It is ephemeral and never persisted.
type RequestStatus struct {
	IsLoading bool   `json:"is_loading"`
	IsError   bool   `json:"is_error"`
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message,omitempty"`
}

// Idle reports whether no request has been dispatched since the last reset.
func (s RequestStatus) Idle() bool {
	return !s.IsLoading && !s.IsError && !s.IsSuccess
}

// Terminal reports whether the last dispatch has resolved.
func (s RequestStatus) Terminal() bool {
	return s.IsError || s.IsSuccess
}

func pendingStatus() RequestStatus {
	return RequestStatus{IsLoading: true}
}

func successStatus(message string) RequestStatus {
	return RequestStatus{IsSuccess: true, Message: message}
}

func errorStatus(message string) RequestStatus {
	return RequestStatus{IsError: true, Message: message}
}
