package meal

import (
	"fmt"
	"net/http"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/services/advisor"
	"ramadan-meal-recommender/services/recommend"
	"ramadan-meal-recommender/services/session"
	"ramadan-meal-recommender/services/trackLog"
	"ramadan-meal-recommender/structs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	AppTitle      = "Healthy Ramadan Meal Recommender"
	CookieSession = "meal_session"
	SessionTTL    = 24 * time.Hour
)

var slotHints = map[string]string{
	enums.SlotSuhoor: "Suhoor tip: high protein and lower sodium to reduce thirst.",
	enums.SlotIftar:  "Iftar tip: moderate calories, medium sodium, and go easy on fat.",
	enums.SlotEither: "either: draws from every meal slot.",
}

type Controller struct {
	advisor  *advisor.Advisor
	sessions *session.Registry
}

func New(a *advisor.Advisor, sessions *session.Registry) *Controller {
	return &Controller{advisor: a, sessions: sessions}
}

// Home shows the login page or the recommend page depending on the session.
func (m *Controller) Home(c *gin.Context) {
	s := m.session(c)
	if !s.LoggedIn {
		m.renderLogin(c, http.StatusOK, "", "")
		return
	}
	m.renderRecommend(c, http.StatusOK, s, structs.DefaultConstraints(), nil, "", "")
}

func (m *Controller) Login(c *gin.Context) {
	var param structs.LoginParam
	if err := c.ShouldBind(&param); err != nil {
		m.renderLogin(c, http.StatusBadRequest, enums.NoticeError, err.Error())
		return
	}

	s := m.session(c)
	if err := s.Login(param.Username); err != nil {
		var validation *session.ValidationError
		if errors.As(err, &validation) {
			m.renderLogin(c, http.StatusUnprocessableEntity, enums.NoticeError, validation.Message)
			return
		}
		m.renderLogin(c, http.StatusInternalServerError, enums.NoticeError, err.Error())
		return
	}

	m.sessions.Save(s)
	c.SetCookie(CookieSession, s.ID, int(SessionTTL/time.Second), "/", "", false, true)
	trackLog.Info(fmt.Sprintf("[login] %s", s.Username), true)
	c.Redirect(http.StatusFound, "/")
}

func (m *Controller) Recommend(c *gin.Context) {
	s := m.session(c)
	if !s.LoggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	constraints := structs.DefaultConstraints()
	if err := c.ShouldBind(&constraints); err != nil {
		m.renderRecommend(c, http.StatusBadRequest, s, constraints, nil, enums.NoticeError, fmt.Sprintf("Invalid settings: %v", err))
		return
	}

	outcome := m.advisor.Serve(c.Request.Context(), s.Username, constraints)
	m.renderRecommend(c, http.StatusOK, s, constraints, outcome.Results, outcome.Notice, outcome.Message)
}

func (m *Controller) Logout(c *gin.Context) {
	s := m.session(c)
	trackLog.Info(fmt.Sprintf("[logout] %s", s.Username), true)
	s.Logout()
	m.sessions.Delete(s.ID)
	c.SetCookie(CookieSession, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// RecommendAPI is the JSON form of the recommend page for scripted clients.
func (m *Controller) RecommendAPI(c *gin.Context) {
	param := structs.RecommendParam{Constraints: structs.DefaultConstraints()}
	if err := c.ShouldBindJSON(&param); err != nil {
		c.JSON(http.StatusBadRequest, structs.RecommendResponse{Notice: enums.NoticeError, Message: err.Error()})
		return
	}

	var s session.Session
	if err := s.Login(param.Username); err != nil {
		c.JSON(http.StatusUnprocessableEntity, structs.RecommendResponse{Notice: enums.NoticeError, Message: err.Error()})
		return
	}

	outcome := m.advisor.Serve(c.Request.Context(), s.Username, param.Constraints)
	status := http.StatusOK
	if outcome.Err != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, outcome.Response(s.Username, param.Constraints))
}

func (m *Controller) session(c *gin.Context) session.Session {
	id, _ := c.Cookie(CookieSession)
	return m.sessions.Get(id)
}

func (m *Controller) renderLogin(c *gin.Context, code int, notice, message string) {
	c.HTML(code, "login", gin.H{
		"title":    AppTitle,
		"subtitle": "Enter your name first. It is only used to label your requests in the audit sheet.",
		"notice":   notice,
		"message":  message,
	})
}

func (m *Controller) renderRecommend(c *gin.Context, code int, s session.Session, constraints structs.Constraints, recs []recommend.Recommendation, notice, message string) {
	c.HTML(code, "recommend", gin.H{
		"title":       AppTitle,
		"subtitle":    fmt.Sprintf("Welcome %s, pick your settings and see the recommendations.", s.Username),
		"slots":       enums.Slots,
		"constraints": constraints,
		"hint":        slotHints[constraints.Meal],
		"results":     recommend.Results(recs),
		"hasKind":     m.advisor.Table().HasKind(),
		"notice":      notice,
		"message":     message,
	})
}
