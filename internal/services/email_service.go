package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

type smtpConfig struct {
	host string
	port string
	user string
	pass string
	from string
}

func loadSMTPConfig() (smtpConfig, bool) {
	cfg := smtpConfig{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("FROM_EMAIL"),
	}
	if cfg.host == "" || cfg.port == "" || cfg.user == "" || cfg.pass == "" {
		return cfg, false
	}
	if cfg.from == "" {
		cfg.from = cfg.user
	}
	return cfg, true
}

// sendHTMLEmail envía un correo HTML a un único destinatario.
func sendHTMLEmail(cfg smtpConfig, to, subject, body string) error {
	auth := smtp.PlainAuth("", cfg.user, cfg.pass, cfg.host)

	message := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		cfg.from, to, subject, body))

	addr := cfg.host + ":" + cfg.port
	if err := smtp.SendMail(addr, auth, cfg.from, []string{to}, message); err != nil {
		return fmt.Errorf("error al enviar el correo: %w", err)
	}
	return nil
}

// SendPasswordResetEmail envía el token de restablecimiento de contraseña.
// Si no hay configuración SMTP, registra el token y simula éxito para no
// bloquear el flujo en desarrollo.
func SendPasswordResetEmail(email, token string) error {
	cfg, ok := loadSMTPConfig()
	if !ok {
		log.Printf("Configuración de email no encontrada. Token para %s: %s", email, token)
		return nil
	}

	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Restablecimiento de contraseña</h2>
		<p>Has solicitado restablecer tu contraseña de CryptoFolio. Utiliza el siguiente token:</p>
		<p><strong>%s</strong></p>
		<p>Si no has solicitado este cambio, puedes ignorar este correo.</p>
	</body>
	</html>
	`, token)

	if err := sendHTMLEmail(cfg, email, "Restablecimiento de contraseña", body); err != nil {
		log.Printf("Error al enviar email de restablecimiento a %s: %v", email, err)
		return err
	}

	log.Printf("Email de restablecimiento enviado a %s", email)
	return nil
}
