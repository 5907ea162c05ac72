package global

import (
	"testing"

	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     *i18n.Text `json:"name_i18n" validate:"omitempty,locale_map"`
	Category string     `json:"categoryId" validate:"object_id"`
	Phone    string     `json:"phoneNumber" validate:"omitempty,phone"`
	Time     string     `json:"reservationTime" validate:"omitempty,clock"`
	Note     string     `json:"note" validate:"no_xss"`
}

func TestInitValidator(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	ok := sample{
		Name:     &i18n.Text{Vi: "Trà sữa"},
		Category: "64b7f0c2a1b2c3d4e5f60718",
		Phone:    "+84 901 234 567",
		Time:     "19:30",
		Note:     "Bàn gần cửa sổ",
	}
	assert.NoError(t, Validate.Struct(ok))

	cases := map[string]func(s *sample){
		"locale rỗng":   func(s *sample) { s.Name = &i18n.Text{Vi: "  "} },
		"object id sai": func(s *sample) { s.Category = "abc" },
		"phone sai":     func(s *sample) { s.Phone = "call me" },
		"giờ sai":       func(s *sample) { s.Time = "25:00" },
		"xss":           func(s *sample) { s.Note = "<script>alert(1)</script>" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := ok
			mutate(&s)
			assert.Error(t, Validate.Struct(s))
		})
	}
}
