package mapper

import (
	"fmt"
	"strconv"

	"library-auth/internal/auth"
	"library-auth/internal/user"
)

// Kakao maps the /v2/user/me payload: a numeric "id" at the top level
// and the interesting fields nested under "kakao_account" and
// "kakao_account.profile".
type Kakao struct{}

func (Kakao) Normalize(raw map[string]any) (auth.Profile, error) {
	id := kakaoID(raw["id"])
	account, _ := raw["kakao_account"].(map[string]any)
	email := stringField(account, "email")
	if id == "" || email == "" {
		return auth.Profile{}, fmt.Errorf("%w: kakao payload missing id or email", auth.ErrMalformedProfile)
	}

	profile, _ := account["profile"].(map[string]any)

	return auth.Profile{
		ProviderID: id,
		Email:      email,
		FirstName:  stringField(profile, "nickname"),
		AvatarURL:  stringField(profile, "profile_image_url"),
		Source:     user.SourceKakao,
	}, nil
}

// kakaoID accepts the id as a JSON number or a string.
func kakaoID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
