package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// Headers a page fetcher sets on the messages it delivers
const (
	HeaderReference = "X-Job-Reference"
	HeaderEmployer  = "X-Employer"
	HeaderSourceURL = "X-Source-URL"
)

// SMTPIntake accepts fetched job pages as mail. Messages are consumed, never relayed.
type SMTPIntake struct {
	service        *core.ContactService
	logger         *zap.Logger
	cfg            config.SMTPConfig
	requestTimeout time.Duration
	server         *smtp.Server
	listener       net.Listener
}

// NewSMTPIntake creates a new SMTP intake
func NewSMTPIntake(service *core.ContactService, logger *zap.Logger, cfg config.SMTPConfig, requestTimeout time.Duration) *SMTPIntake {
	return &SMTPIntake{
		service:        service,
		logger:         logger,
		cfg:            cfg,
		requestTimeout: requestTimeout,
	}
}

// Start starts the SMTP server
func (i *SMTPIntake) Start() error {
	i.server = smtp.NewServer(&smtpBackend{intake: i})
	i.server.Addr = i.cfg.ListenAddress
	i.server.Domain = i.cfg.Domain
	i.server.ReadTimeout = i.cfg.ReadTimeout
	i.server.WriteTimeout = i.cfg.WriteTimeout
	i.server.MaxMessageBytes = i.cfg.MaxMessageBytes
	i.server.MaxRecipients = 50

	l, err := net.Listen("tcp", i.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", i.cfg.ListenAddress, err)
	}
	i.listener = l

	i.logger.Info("SMTP intake starting", zap.String("address", l.Addr().String()))

	go func() {
		if err := i.server.Serve(l); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			i.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the address the server listens on, once started
func (i *SMTPIntake) Addr() string {
	if i.listener == nil {
		return ""
	}
	return i.listener.Addr().String()
}

// Stop stops the SMTP server
func (i *SMTPIntake) Stop() error {
	if i.server != nil {
		return i.server.Close()
	}
	return nil
}

// ProcessPosting processes a posting directly
func (i *SMTPIntake) ProcessPosting(ctx context.Context, posting *core.JobPosting) (*core.ContactRecord, error) {
	return i.service.ProcessPosting(ctx, posting)
}

// handleMessage turns one delivered message into a posting
func (i *SMTPIntake) handleMessage(sender string, raw []byte) error {
	msg, err := readMessage(raw)
	if err != nil {
		i.logger.Error("Failed to parse message", zap.String("sender", sender), zap.Error(err))
		return &smtp.SMTPError{Code: 554, EnhancedCode: smtp.EnhancedCode{5, 6, 0}, Message: "Malformed message"}
	}

	reference := decodeHeader(msg.Header.Get(HeaderReference))
	if reference == "" {
		reference = messageID(msg.Header.Get("Message-ID"))
	}

	html, err := extractPostingBody(msg)
	if err != nil {
		i.logger.Error("Failed to extract posting body", zap.String("reference", reference), zap.Error(err))
		return &smtp.SMTPError{Code: 554, EnhancedCode: smtp.EnhancedCode{5, 6, 0}, Message: "Unreadable message body"}
	}

	posting := &core.JobPosting{
		Reference: reference,
		SourceURL: decodeHeader(msg.Header.Get(HeaderSourceURL)),
		Employer:  decodeHeader(msg.Header.Get(HeaderEmployer)),
		HTML:      html,
	}

	ctx := context.Background()
	if i.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.requestTimeout)
		defer cancel()
	}

	if _, err := i.service.ProcessPosting(ctx, posting); err != nil {
		if errors.Is(err, core.ErrMissingReference) {
			return &smtp.SMTPError{Code: 554, EnhancedCode: smtp.EnhancedCode{5, 6, 0}, Message: "Missing " + HeaderReference}
		}
		i.logger.Error("Failed to process posting",
			zap.String("reference", reference),
			zap.String("sender", sender),
			zap.Error(err))
		// Temporary, the fetcher retries
		return &smtp.SMTPError{Code: 451, EnhancedCode: smtp.EnhancedCode{4, 3, 0}, Message: "Processing failed, try again later"}
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	intake *SMTPIntake
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{intake: b.intake}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	intake *SMTPIntake
	sender string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt accepts any recipient
func (s *smtpSession) Rcpt(_ string, _ *smtp.RcptOptions) error {
	return nil
}

// Data reads and processes the message
func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.intake.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}
	return s.intake.handleMessage(s.sender, raw)
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
