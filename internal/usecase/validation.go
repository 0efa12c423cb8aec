package usecase

import (
	"fmt"
	"regexp"
	"strings"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
)

// ServiceStoryViews is the only service whose target is a story rather than a reel or post.
const ServiceStoryViews = "story_views"

const (
	minPaymentReferenceLen = 6
	maxOrderIDLen          = 64
)

var (
	storyURLPattern = regexp.MustCompile(`(https?://)?(www\.)?instagram\.com/stories/([A-Za-z0-9._-]+)/([0-9]+)`)
	postURLPattern  = regexp.MustCompile(`(https?://)?(www\.)?instagram\.com/(reel|p|tv)/([A-Za-z0-9_-]+)`)
	orderIDPattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// NormalizeOrderInput trims buyer supplied fields and validates them.
func NormalizeOrderInput(in model.OrderInput) (model.OrderInput, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.PackageID = strings.TrimSpace(in.PackageID)
	in.TargetURL = strings.TrimSpace(in.TargetURL)
	in.PaymentReference = strings.TrimSpace(in.PaymentReference)

	switch {
	case in.ID != "" && !ValidateOrderID(in.ID):
		return in, invalid("id has unsupported format")
	case in.ServiceType == "":
		return in, invalid("service_type is required")
	case in.PackageID == "":
		return in, invalid("package_id is required")
	case in.Quantity <= 0:
		return in, invalid("quantity must be positive")
	case in.Price <= 0:
		return in, invalid("price must be positive")
	case in.TargetURL == "":
		return in, invalid("target_url is required")
	case !ValidateTargetURL(in.ServiceType, in.TargetURL):
		if in.ServiceType == ServiceStoryViews {
			return in, invalid("target_url must be an Instagram story URL")
		}
		return in, invalid("target_url must be an Instagram reel URL")
	case len(in.PaymentReference) < minPaymentReferenceLen:
		return in, invalid("payment_reference must have at least 6 characters")
	}

	return in, nil
}

// ValidateTargetURL checks the link shape expected for the service.
func ValidateTargetURL(serviceType, url string) bool {
	if serviceType == ServiceStoryViews {
		return storyURLPattern.MatchString(url)
	}
	return postURLPattern.MatchString(url)
}

// ValidateOrderID accepts short codes made of letters, digits, dashes and underscores.
func ValidateOrderID(id string) bool {
	return len(id) <= maxOrderIDLen && orderIDPattern.MatchString(id)
}

func invalid(detail string) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrInvalidInput, detail)
}
