package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
)

func validInput() model.OrderInput {
	return model.OrderInput{
		ID:               "DIB-AB12CD",
		ServiceType:      "views",
		PackageID:        "views_basic",
		Quantity:         100000,
		Price:            99,
		TargetURL:        "https://www.instagram.com/reel/Cxyz_123/",
		PaymentReference: "123456789012",
	}
}

func TestNormalizeOrderInputTrims(t *testing.T) {
	in := validInput()
	in.ID = "  DIB-AB12CD "
	in.TargetURL = " https://instagram.com/p/abc \n"
	in.PaymentReference = "\t123456 "

	out, err := NormalizeOrderInput(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "DIB-AB12CD" || out.TargetURL != "https://instagram.com/p/abc" || out.PaymentReference != "123456" {
		t.Fatalf("fields were not trimmed: %+v", out)
	}
}

func TestNormalizeOrderInputRejects(t *testing.T) {
	cases := map[string]func(*model.OrderInput){
		"bad id":          func(in *model.OrderInput) { in.ID = "DIB AB" },
		"long id":         func(in *model.OrderInput) { in.ID = strings.Repeat("A", maxOrderIDLen+1) },
		"no service":      func(in *model.OrderInput) { in.ServiceType = " " },
		"no package":      func(in *model.OrderInput) { in.PackageID = "" },
		"zero quantity":   func(in *model.OrderInput) { in.Quantity = 0 },
		"negative price":  func(in *model.OrderInput) { in.Price = -1 },
		"no url":          func(in *model.OrderInput) { in.TargetURL = "" },
		"foreign url":     func(in *model.OrderInput) { in.TargetURL = "https://example.com/reel/abc" },
		"story for reel":  func(in *model.OrderInput) { in.TargetURL = "https://instagram.com/stories/user/123" },
		"short reference": func(in *model.OrderInput) { in.PaymentReference = "12345" },
		"blank reference": func(in *model.OrderInput) { in.PaymentReference = "       " },
		"reel for story":  func(in *model.OrderInput) { in.ServiceType = ServiceStoryViews },
		"story without num": func(in *model.OrderInput) {
			in.ServiceType = ServiceStoryViews
			in.TargetURL = "instagram.com/stories/user/"
		},
	}

	for name, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := NormalizeOrderInput(in); !errors.Is(err, domainErrors.ErrInvalidInput) {
			t.Errorf("%s: expected invalid input, got %v", name, err)
		}
	}
}

func TestNormalizeOrderInputAllowsMissingID(t *testing.T) {
	in := validInput()
	in.ID = ""
	if _, err := NormalizeOrderInput(in); err != nil {
		t.Fatalf("missing id must be accepted, got %v", err)
	}
}

func TestValidateTargetURL(t *testing.T) {
	valid := map[string]string{
		"views":           "https://instagram.com/reel/abc",
		"likes":           "instagram.com/p/XYZ-1",
		"followers":       "http://www.instagram.com/tv/abc_def",
		ServiceStoryViews: "https://www.instagram.com/stories/some.user/3141592653",
	}
	for service, url := range valid {
		if !ValidateTargetURL(service, url) {
			t.Errorf("expected %s to be valid for %s", url, service)
		}
	}

	if ValidateTargetURL("views", "https://instagram.com/user/abc") {
		t.Error("profile link must not be accepted")
	}
	if ValidateTargetURL(ServiceStoryViews, "https://instagram.com/reel/abc") {
		t.Error("reel link must not be accepted for stories")
	}
}

func TestValidateOrderID(t *testing.T) {
	for _, id := range []string{"DIB-AB12CD", "A", "order_1"} {
		if !ValidateOrderID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}
	for _, id := range []string{"", "-DIB", "DIB/1", "DIB 1"} {
		if ValidateOrderID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}
