package mail

import "gopkg.in/gomail.v2"

type SMTPMailSender struct {
	*gomail.Dialer
}

func (s *SMTPMailSender) Send(message *Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", message.From)
	msg.SetHeader("To", message.To...)
	msg.SetHeader("Subject", message.Subject)
	if message.IsHTML {
		msg.SetBody("text/html", message.Body)
	} else {
		msg.SetBody("text/plain", message.Body)
	}
	return s.DialAndSend(msg)
}

func NewSMTPMailSender(host string, port int, username string, password string) MailSender {
	return &SMTPMailSender{
		Dialer: gomail.NewDialer(host, port, username, password),
	}
}
