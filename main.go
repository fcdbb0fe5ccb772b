package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/matt-g-everett/sketchtx/api"
	"github.com/matt-g-everett/sketchtx/chart"
	"github.com/matt-g-everett/sketchtx/shape"
	"github.com/matt-g-everett/sketchtx/stream"
	"github.com/matt-g-everett/sketchtx/trace"
	"gopkg.in/yaml.v2"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Api      *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(); err != nil {
		log.Printf("Subscribe failed: %v", err)
	}
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(ctx, a.Config.HTTP.Addr); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()

	if err := a.Streamer.Run(ctx); err != nil && ctx.Err() == nil {
		panic(err)
	}
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&a.Config)
	if err != nil {
		panic(err)
	}
	if err = a.Config.Validate(); err != nil {
		panic(err)
	}
}

// plot writes the chart of the configured timeline to file.
func (a *app) plot(file string) {
	elements, err := shape.Elements(a.Config.Scene.Elements)
	if err != nil {
		panic(err)
	}
	opts, err := a.Config.Animation.Options()
	if err != nil {
		panic(err)
	}
	t, err := trace.Build(shape.Drawables(elements), opts.Layout)
	if err != nil {
		panic(err)
	}
	if err = chart.SavePNG(file, t, opts.AnimEase, opts.PathEase); err != nil {
		panic(err)
	}
	log.Printf("Timeline of %d segments written to %s", len(t.Segments), file)
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	plotPath := flag.String("plot", "", "Write the timeline chart to this PNG file and exit.")
	verbose := flag.Bool("v", false, "Log animation events.")
	flag.Parse()

	if *verbose {
		trace.SetLogger(slog.Default())
	}

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	if *plotPath != "" {
		a.plot(*plotPath)
		return
	}

	clientID := a.Config.Mqtt.ClientID
	if clientID == "" {
		clientID = "sketchtx-" + uuid.NewString()
	}
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(clientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	var err error
	a.Streamer, err = stream.NewStreamer(a.Config, a.Client)
	if err != nil {
		panic(err)
	}
	a.Api = api.NewApi(a.Streamer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.run(ctx)
}
