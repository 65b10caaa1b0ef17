package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/noah-isme/portfolio-api/pkg/contactclient"
	"github.com/noah-isme/portfolio-api/pkg/notify"
)

func main() {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetDefault("endpoint", "http://localhost:3000/api/contact")
	v.SetDefault("client_timeout", "10s")

	endpoint := flag.String("endpoint", v.GetString("endpoint"), "contact submission endpoint")
	name := flag.String("name", "", "your name")
	email := flag.String("email", "", "your email address")
	subject := flag.String("subject", "", "message subject")
	message := flag.String("message", "", "message body")
	timeout := flag.Duration("timeout", v.GetDuration("client_timeout"), "per-attempt request timeout")
	verbose := flag.Bool("v", false, "log request attempts")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level).With().Timestamp().Logger()

	client, err := contactclient.New(contactclient.Config{Endpoint: *endpoint, Timeout: *timeout}, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	center := notify.NewCenter(notify.NewWriterSurface(os.Stdout))
	form := contactclient.NewForm(client, center, logger)
	form.SetFields(contactclient.Message{
		Name:    *name,
		Email:   *email,
		Subject: *subject,
		Message: *message,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if outcome := form.Submit(ctx); outcome != contactclient.OutcomeSent {
		logger.Debug().Str("outcome", outcome.String()).Msg("submission not accepted")
		os.Exit(1)
	}
}
