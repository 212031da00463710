package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SecretKey string

	DatabaseURL string

	ServerPort string

	MailServer   string
	MailPort     int
	MailUseTLS   bool
	MailUsername string
	MailPassword string
	MailSender   string

	Admins []string

	Languages []string

	MSTranslatorKey string

	PostsPerPage int

	AccessTokenMaxAge    int
	RememberTokenMaxAge  int
	PasswordResetExpires int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		secretKey = "you-will-never-guess"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	mailPort, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil || mailPort <= 0 {
		mailPort = 25
	}

	mailSender := os.Getenv("MAIL_SENDER")
	if mailSender == "" {
		mailSender = "no-reply@microblog"
	}

	postsPerPage, err := strconv.Atoi(os.Getenv("POSTS_PER_PAGE"))
	if err != nil || postsPerPage <= 0 {
		postsPerPage = 10
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 3600
	}

	rememberTokenMaxAge, err := strconv.Atoi(os.Getenv("REMEMBER_TOKEN_MAX_AGE"))
	if err != nil || rememberTokenMaxAge <= 0 {
		rememberTokenMaxAge = 2592000
	}

	resetExpires, err := strconv.Atoi(os.Getenv("PASSWORD_RESET_EXPIRES"))
	if err != nil || resetExpires <= 0 {
		resetExpires = 600
	}

	return &Config{
		SecretKey: secretKey,

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ServerPort: serverPort,

		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     mailPort,
		MailUseTLS:   os.Getenv("MAIL_USE_TLS") != "",
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailSender:   mailSender,

		Admins:    splitList(os.Getenv("ADMINS")),
		Languages: splitListDefault(os.Getenv("LANGUAGES"), []string{"en", "es"}),

		MSTranslatorKey: os.Getenv("MS_TRANSLATOR_KEY"),

		PostsPerPage: postsPerPage,

		AccessTokenMaxAge:    accessTokenMaxAge,
		RememberTokenMaxAge:  rememberTokenMaxAge,
		PasswordResetExpires: resetExpires,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
	}, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitListDefault(raw string, fallback []string) []string {
	if list := splitList(raw); len(list) > 0 {
		return list
	}
	return fallback
}
