package bootstrap

import (
	"log"

	"gorm.io/gorm"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/controller"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/implementation"
	"ai-companion-be/internal/service"
	"ai-companion-be/pkg/llm/factory"
	"ai-companion-be/pkg/persona"
)

type Container struct {
	ChatController controller.IChatController
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	stateRepo := implementation.NewPersonalityStateRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)

	chatService := service.NewChatService(
		stateRepo,
		messageRepo,
		llmProvider,
		persona.TimeSeededRand(),
		sysLogger,
	)

	return &Container{
		ChatController: controller.NewChatController(chatService),
		Logger:         sysLogger,
	}
}
