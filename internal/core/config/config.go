package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// HTTPTimeoutSeconds bounds every outbound HTTP call.
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT_SECONDS" default:"10"`

	// MongoURI is the connection string of the order store.
	MongoURI string `mapstructure:"MONGO_URI" default:"mongodb://localhost:27017"`
	// MongoDB is the database name holding the orders collection.
	MongoDB string `mapstructure:"MONGO_DB" default:"gearmates"`

	// RedisURL is the connection string of the cart store.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379"`

	// JWTSecret verifies bearer tokens issued by the auth service.
	JWTSecret string `mapstructure:"JWT_SECRET" required:"true"`

	// RetryShipmentOnReconfirm re-runs shipment booking when a duplicate
	// payment confirmation arrives for an order whose previous booking failed.
	RetryShipmentOnReconfirm bool `mapstructure:"RETRY_SHIPMENT_ON_RECONFIRM" default:"true"`

	// Shiprocket holds the logistics aggregator configuration.
	Shiprocket ShiprocketConfig `mapstructure:",squash"`

	// Payment holds the payment gateway configuration.
	Payment PaymentConfig `mapstructure:",squash"`
}

// ShiprocketConfig holds the credentials and defaults for the carrier aggregator.
type ShiprocketConfig struct {
	// URL is the base URL of the aggregator's external API.
	URL string `mapstructure:"SHIPROCKET_URL" default:"https://apiv2.shiprocket.in/v1/external"`
	// Email is the account email exchanged for a bearer token.
	Email string `mapstructure:"SHIPROCKET_EMAIL" required:"true"`
	// Password is the account password exchanged for a bearer token.
	Password string `mapstructure:"SHIPROCKET_PASSWORD" required:"true"`
	// PickupPincode is the origin postal code used for serviceability checks.
	PickupPincode string `mapstructure:"SHIPROCKET_PICKUP_PINCODE" default:"110001"`
	// PickupLocation is the registered pickup location name.
	PickupLocation string `mapstructure:"SHIPROCKET_PICKUP_LOCATION" default:"Primary"`
	// TokenTTLHours caches the bearer token for this long. The provider issues
	// 24h tokens; refreshing at 23h keeps a safety margin.
	TokenTTLHours int `mapstructure:"SHIPROCKET_TOKEN_TTL_HOURS" default:"23"`
	// TrackingURLBase builds a customer-facing tracking link from an AWB
	// when the provider does not supply one.
	TrackingURLBase string `mapstructure:"TRACKING_URL_BASE" default:"https://shiprocket.co/tracking"`
}

// PaymentConfig holds the payment gateway credentials.
type PaymentConfig struct {
	// URL is the base URL of the payment gateway API.
	URL string `mapstructure:"PAYMENT_URL" default:"https://api.razorpay.com"`
	// KeyID is the public API key.
	KeyID string `mapstructure:"PAYMENT_KEY_ID" required:"true"`
	// KeySecret is the secret API key.
	KeySecret string `mapstructure:"PAYMENT_KEY_SECRET" required:"true"`
	// Currency is the ISO currency code charged for every order.
	Currency string `mapstructure:"PAYMENT_CURRENCY" default:"INR"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
