package contract

import "github.com/danielmeier/cramplan/internal/app"

type SessionView = app.SessionView

var NewSessionView = app.NewSessionView

var NewSessionViews = app.NewSessionViews
