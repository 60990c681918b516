// Package smtp provides the SMTP transport used for reminder e-mails.
package smtp

import "io"

// Client is the subset of *smtp.Client the sender needs; mockable in tests.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface describes an SMTP transport.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
	IsConfigured() bool
}
