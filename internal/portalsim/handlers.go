package portalsim

import (
	"github.com/rs/zerolog/log"
	"html/template"
	"net/http"
)

var (
	cookieNameAuth         = ".ASPXAUTH"
	fieldVerificationToken = "__RequestVerificationToken"
	fieldUserName          = "UserName"
	fieldPassword          = "Password"
)

var logonPageTemplate = template.Must(template.New("logon").Parse(`<!DOCTYPE html>
<html>
<head><title>Portal - Logon</title></head>
<body>
<form action="/Home/Logon" method="post">
<input name="__RequestVerificationToken" type="hidden" value="{{.VerificationToken}}"/>
<input name="UserName" type="text"/>
<input name="Password" type="password"/>
<button type="submit">Log in</button>
</form>
</body>
</html>
`))

var profilePageTemplate = template.Must(template.New("profile").Parse(`<!DOCTYPE html>
<html>
<head><title>Portal - My Account</title></head>
<body>
<h1>Welcome, {{.Username}}</h1>
{{if .CardToken}}<div id="balance-card" data-card-token="{{.CardToken}}"></div>{{end}}
</body>
</html>
`))

// handleLogonPage handles 'GET /Home/Logon' and renders the logon form with a fresh verification token
func (service *Service) handleLogonPage(writer http.ResponseWriter, _ *http.Request) {
	token, err := service.store.IssueVerificationToken()
	if err != nil {
		service.internalError(writer, err)
		return
	}
	service.renderLogonPage(writer, token)
}

// handleLogon handles 'POST /Home/Logon'.
// A valid verification token plus valid credentials yield a 302 to the profile page carrying the
// auth cookie; rejected credentials re-render the logon form with a fresh verification token.
func (service *Service) handleLogon(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, "malformed form body", http.StatusBadRequest)
		return
	}

	known, err := service.store.ConsumeVerificationToken(request.PostFormValue(fieldVerificationToken))
	if err != nil {
		service.internalError(writer, err)
		return
	}
	if !known {
		http.Error(writer, "invalid verification token", http.StatusBadRequest)
		return
	}

	session, ok, err := service.store.Authenticate(request.PostFormValue(fieldUserName), request.PostFormValue(fieldPassword))
	if err != nil {
		service.internalError(writer, err)
		return
	}
	if !ok {
		token, err := service.store.IssueVerificationToken()
		if err != nil {
			service.internalError(writer, err)
			return
		}
		service.renderLogonPage(writer, token)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameAuth,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(writer, request, "/Home/Index", http.StatusFound)
}

// handleProfile handles 'GET /Home/Index' and renders the profile page of the authenticated account.
// Unauthenticated requests are redirected to the logon page.
func (service *Service) handleProfile(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(cookieNameAuth)
	if err != nil {
		http.Redirect(writer, request, "/Home/Logon", http.StatusFound)
		return
	}

	account, err := service.store.AccountBySession(cookie.Value)
	if err != nil {
		service.internalError(writer, err)
		return
	}
	if account == nil {
		http.Redirect(writer, request, "/Home/Logon", http.StatusFound)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := profilePageTemplate.Execute(writer, account); err != nil {
		log.Error().Err(err).Msg("could not render the profile page")
	}
}

func (service *Service) renderLogonPage(writer http.ResponseWriter, verificationToken string) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := logonPageTemplate.Execute(writer, map[string]interface{}{
		"VerificationToken": verificationToken,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not render the logon page")
	}
}

func (service *Service) internalError(writer http.ResponseWriter, err error) {
	http.Error(writer, "internal error", http.StatusInternalServerError)
	log.Error().Err(err).Msg("the simulated portal experienced an unexpected error")
}
