package mail

import "log/slog"

// Dispatcher sends messages without blocking the caller. Delivery is
// best-effort: failures are logged and never propagated, so a failed
// notification does not fail or roll back the request that triggered it.
type Dispatcher struct {
	sender MailSender
	from   string
}

func NewDispatcher(sender MailSender, from string) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		from:   from,
	}
}

func (d *Dispatcher) Dispatch(message *Message) {
	if message.From == "" {
		message.From = d.from
	}
	go func() {
		if err := d.sender.Send(message); err != nil {
			slog.Error("Failed to send email", "to", message.To, "subject", message.Subject, "error", err)
			return
		}
		slog.Debug("Email sent", "to", message.To, "subject", message.Subject)
	}()
}
