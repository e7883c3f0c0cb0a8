package contract

import "github.com/alexanderramin/telos/internal/app"

type LinkCommand = app.LinkCommand

const (
	LinkChain    LinkCommand = app.LinkChain
	LinkFanIn    LinkCommand = app.LinkFanIn
	LinkFanOut   LinkCommand = app.LinkFanOut
	LinkUnlink   LinkCommand = app.LinkUnlink
	LinkClearAll LinkCommand = app.LinkClearAll
)

type LinkRequest = app.LinkRequest

func NewLinkRequest(planID string, selection []string) LinkRequest {
	return app.NewLinkRequest(planID, selection)
}

type LinkResponse = app.LinkResponse

type ApplyFailure = app.ApplyFailure

type ApplyReport = app.ApplyReport

type LinkErrorCode = app.LinkErrorCode

const (
	LinkErrInsufficientSelection LinkErrorCode = app.LinkErrInsufficientSelection
	LinkErrCircularDependency    LinkErrorCode = app.LinkErrCircularDependency
	LinkErrDanglingReference     LinkErrorCode = app.LinkErrDanglingReference
	LinkErrInternal              LinkErrorCode = app.LinkErrInternal
)

type LinkError = app.LinkError

type LinkUseCase = app.LinkUseCase
