package main

import (
	"context"
	"flag"
	"log/slog"

	"votebot/bot/convo"
	"votebot/bot/telegram"
	"votebot/bot/vote"
	"votebot/entity"
	"votebot/impl/core"
	"votebot/internal/config"
	repository "votebot/internal/database"
	"votebot/internal/http-server/api"
	"votebot/internal/lib/logger"
	"votebot/internal/lib/sl"
	"votebot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram transport if enabled
	var tgBot *telegram.Bot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = telegram.NewBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			// Route error-level log records to the admin chat
			lg = logger.SetupAlertHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
				sl.Secret("api_key", conf.Telegram.ApiKey),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting votebot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetBotUserID(conf.Bot.UserID)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
		return
	}
	// every store and the zip lookup sit on mongo; refuse to limp along
	// without it
	if db == nil {
		lg.Error("mongo is disabled in config, nothing to store conversations in")
		return
	}
	handler.SetRepository(db)
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("user", conf.Mongo.User),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	botUser := entity.NewUser(conf.Bot.Username, entity.UserTypeBot)
	botUser.UUID = conf.Bot.UserID
	if err := db.UpsertUser(context.Background(), botUser); err != nil {
		lg.With(
			sl.Err(err),
		).Error("upsert bot user")
	}

	registry := convo.NewRegistry()
	if err := registry.Register(vote.NewChain(conf.App.URL, db)); err != nil {
		lg.With(
			sl.Err(err),
		).Error("register vote chain")
		return
	}
	lg.Info("dialogue chains registered")

	engine := convo.NewEngine(registry, db, db, db, conf.Bot.UserID, lg)
	handler.SetEngine(engine)

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetHub(hub)

	engine.SetMessageListener(handler)

	if tgBot != nil {
		tgBot.SetHandler(handler)
		handler.SetMessenger(entity.UserTypeTelegram, tgBot)
		go func() {
			if err := tgBot.Start(); err != nil {
				lg.Error("telegram bot error", slog.String("error", err.Error()))
			}
		}()
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
