package notify

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/garilangu/gari-langu/internal/lib/smtp"
)

type TransportMock struct {
	mock.Mock
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	client, _ := args.Get(0).(smtp.Client)
	return client, args.Error(1)
}

func (m *TransportMock) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

func (m *TransportMock) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

type ClientMock struct {
	mock.Mock
	data bytes.Buffer
}

func (m *ClientMock) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *ClientMock) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	return nopWriteCloser{&m.data}, args.Error(0)
}

func (m *ClientMock) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *ClientMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func TestEmailSender_Send(t *testing.T) {
	transport := new(TransportMock)
	client := new(ClientMock)

	transport.On("IsConfigured").Return(true)
	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(client, nil).Once()

	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", "juma@example.com").Return(nil).Once()
	client.On("Data").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	sender := NewEmailSender(transport, newNoopLogger())

	err := sender.Send("juma@example.com", "Service reminder", "Your oil change is due.")

	require.NoError(t, err)
	msg := client.data.String()
	assert.Contains(t, msg, "To: juma@example.com")
	assert.Contains(t, msg, "Subject: Service reminder")
	assert.Contains(t, msg, "Your oil change is due.")
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestEmailSender_Send_NotConfigured(t *testing.T) {
	transport := new(TransportMock)
	transport.On("IsConfigured").Return(false)

	sender := NewEmailSender(transport, newNoopLogger())

	err := sender.Send("juma@example.com", "subject", "body")
	assert.ErrorIs(t, err, ErrNotConfigured)
	transport.AssertNotCalled(t, "Connect")
}

func TestEmailSender_Send_ConnectFailure(t *testing.T) {
	transport := new(TransportMock)
	transport.On("IsConfigured").Return(true)
	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(nil, errors.New("dial failed")).Once()

	sender := NewEmailSender(transport, newNoopLogger())

	err := sender.Send("juma@example.com", "subject", "body")
	assert.Error(t, err)
}
