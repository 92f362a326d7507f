package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/shiftpool/marketplace-backend/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Twilio / SendGrid for worker notifications
	TwilioAccountSID string
	TwilioAuthToken  string
	SendGridAPIKey   string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// LaunchDarkly flags
	LDFlag_TwilioFromPhone     string
	LDFlag_SendgridFromEmail   string
	LDFlag_SendgridSandboxMode bool
	LDFlag_SeedDbWithTestData  bool
	LDFlag_CORSHighSecurity    bool
}

const (
	AppName             = "marketplace-backend"
	LDConnectionTimeout = 5 * time.Second
)

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func LoadConfig() *Config {
	// .env is optional; real deployments inject the environment.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, relying on the environment")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	cfg := &Config{
		AppName: AppName,
		AppPort: mustEnv("APP_PORT"),
		AppUrl:  mustEnv("APP_URL"),
		DBUrl:   mustEnv("DB_URL"),

		TwilioAccountSID: mustEnv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  mustEnv("TWILIO_AUTH_TOKEN"),
		SendGridAPIKey:   mustEnv("SENDGRID_API_KEY"),
	}

	pubB64 := mustEnv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	cfg.RSAPublicKey = pubKey

	ldSDKKey := mustEnv("LD_SDK_KEY")
	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind("service", AppName)

	twilioFromFlag, err := ldClient.StringVariation("twilio_from_phone", ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving twilio_from_phone flag")
	}
	if twilioFromFlag == "" {
		utils.Logger.Warn("twilio_from_phone flag is empty, defaulting to +10005550006")
		twilioFromFlag = "+10005550006"
	}
	cfg.LDFlag_TwilioFromPhone = twilioFromFlag

	sgFromFlag, err := ldClient.StringVariation("sendgrid_from_email", ctx, "")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	if sgFromFlag == "" {
		utils.Logger.Warn("sendgrid_from_email flag is empty, defaulting to no-reply@shiftpool.sk")
		sgFromFlag = "no-reply@shiftpool.sk"
	}
	cfg.LDFlag_SendgridFromEmail = sgFromFlag

	sandboxFlag, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_sandbox_mode flag")
	}
	cfg.LDFlag_SendgridSandboxMode = sandboxFlag

	seedFlag, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving seed_db_with_test_data flag")
	}
	cfg.LDFlag_SeedDbWithTestData = seedFlag

	corsFlag, err := ldClient.BoolVariation("cors_high_security", ctx, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	cfg.LDFlag_CORSHighSecurity = corsFlag

	return cfg
}
