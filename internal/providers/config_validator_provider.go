package providers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"

	"lpec/internal/models"
	"lpec/internal/structures"
)

// DefaultAPIURL is the LastPass enterprise reporting endpoint.
const DefaultAPIURL = "https://lastpass.com/enterpriseapi.php"

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks the struct tags, then the vendor-specific rules. The API
// URL is normalized in place so the rest of the program never sees a bare
// domain.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}

	url, err := NormalizeAPIURL(cv.conf.LastPass.APIURL)
	if err != nil {
		return err
	}
	cv.conf.LastPass.APIURL = url

	if err := validateTimeStart(cv.conf.LastPass.TimeStart, time.Now()); err != nil {
		return err
	}

	if cv.conf.Checkpoint.Backend == "file" && cv.conf.Checkpoint.FilePath == "" {
		return errors.New("checkpoint.filePath is required for the file backend")
	}
	if cv.conf.Checkpoint.Backend == "redis" && cv.conf.Checkpoint.Redis.Addr == "" {
		return errors.New("checkpoint.redis.addr is required for the redis backend")
	}
	if cv.conf.Sink.Type == "hec" && (cv.conf.Sink.HEC.URL == "" || cv.conf.Sink.HEC.Token == "") {
		return errors.New("sink.hec.url and sink.hec.token are required for the hec sink")
	}
	return nil
}

// NormalizeAPIURL enforces HTTPS on the reporting endpoint. An empty value
// falls back to the vendor default, a bare domain gets the scheme prefixed,
// explicit plain HTTP and scheme-less values without a domain dot are
// rejected.
func NormalizeAPIURL(url string) (string, error) {
	if url == "" {
		return DefaultAPIURL, nil
	}
	if strings.Contains(url, "https://") {
		return url, nil
	}
	if strings.Contains(url, "http") {
		return "", errors.New(`"HTTP" protocol not allowed. Please update for HTTPS`)
	}
	if !strings.Contains(url, ".") {
		return "", errors.New("URL submission invalid. Please validate domain")
	}
	return "https://" + url, nil
}

// validateTimeStart rejects an operator start time that is unusable before
// the input is ever activated. Epoch values must be within the accepted
// range; anything else must match the wire layout exactly.
func validateTimeStart(ts string, now time.Time) error {
	if ts == "" {
		return nil
	}
	if models.Classify(ts) == models.KindDigit {
		if _, ok := models.ToBoundedInstant(ts, now); !ok {
			return fmt.Errorf("validating time format: out of range. time_val=%q", ts)
		}
		return nil
	}
	if _, err := time.ParseInLocation(models.WireTimeLayout, ts, time.Local); err != nil {
		return fmt.Errorf("lastpass input configuration failed: %w", err)
	}
	return nil
}
