package clientservice

// Pet is a client's pet from ClientService
type Pet struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"clientId"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
}

// Logger is the logging interface needed by the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
