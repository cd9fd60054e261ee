package email

type EmailSender interface {
    SendEmail(to, subject, body string) error
    SendVerificationEmail(to, code string) error
    SendOrderConfirmationEmail(to, firstName, planName, total string) error
}
