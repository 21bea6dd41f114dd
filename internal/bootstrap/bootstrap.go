package bootstrap

import (
	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	chatinadapter "heartrisk/internal/modules/chat/adapter/in"
	chatoutadapter "heartrisk/internal/modules/chat/adapter/out"
	chatservice "heartrisk/internal/modules/chat/service"
	chatusecase "heartrisk/internal/modules/chat/usecase"
	intakeinadapter "heartrisk/internal/modules/intake/adapter/in"
	intakeoutadapter "heartrisk/internal/modules/intake/adapter/out"
	intakeservice "heartrisk/internal/modules/intake/service"
	intakeusecase "heartrisk/internal/modules/intake/usecase"
	"heartrisk/internal/platform/clock"
	"heartrisk/internal/platform/config"
	"heartrisk/internal/platform/httpjson"
	"heartrisk/internal/platform/id"
	uiapp "heartrisk/internal/ui/app"
)

type App struct {
	IntakeCLI intakeinadapter.CLIHandler
	ChatCLI   chatinadapter.CLIHandler
}

func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	client := httpjson.New(cfg.BaseURL, cfg.Timeout)

	intakeUC := intakeusecase.NewInteractor(
		intakeservice.NewIntakeService(clk, ids, intakeoutadapter.NewHTTPPredictor(client), logger.Named("intake")),
		logger.Named("intake"),
	)
	chatUC := chatusecase.NewInteractor(
		chatservice.NewChatService(ids, chatoutadapter.NewHTTPAdvisor(client)),
		logger.Named("chat"),
	)

	logger.Debug("backend configured", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
	return &App{
		IntakeCLI: intakeinadapter.NewCLIHandler(intakeUC),
		ChatCLI:   chatinadapter.NewCLIHandler(chatUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.IntakeCLI, app.ChatCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
