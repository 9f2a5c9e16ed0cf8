package config

const (
	PaymentProviderMock     = "mock"
	PaymentProviderStripe   = "stripe"
	PaymentProviderRazorpay = "razorpay"
)

type PaymentConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	Stripe          *StripeConfig   `yaml:"stripe"`
	Razorpay        *RazorpayConfig `yaml:"razorpay"`
	Currency        string          `yaml:"currency"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	stripe := &StripeConfig{
		PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
	}

	// Stripe is used whenever a secret key is present, mock otherwise.
	defaultProvider := PaymentProviderMock
	if stripe.SecretKey != "" {
		defaultProvider = PaymentProviderStripe
	}

	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_DEFAULT_PROVIDER", defaultProvider),
		Stripe:          stripe,
		Razorpay: &RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		},
		Currency: getEnv("PAYMENT_CURRENCY", "usd"),
	}
}
