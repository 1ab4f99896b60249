/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/accounts/pkg/server"
	"github.com/unikorn-cloud/accounts/pkg/users"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

type options struct {
	server server.Options

	jwtSecret string
	tokenTTL  time.Duration
	seed      bool
}

func (o *options) addFlags(f *pflag.FlagSet) {
	o.server.AddFlags(f)

	f.StringVar(&o.jwtSecret, "jwt-secret", "", "Secret used to sign session tokens.")
	f.DurationVar(&o.tokenTTL, "token-ttl", time.Hour, "How long a session token is valid for.")
	f.BoolVar(&o.seed, "seed", true, "Install the fixture accounts the API suites expect.")
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	zapOptions := zap.Options{
		Development: true,
	}

	goflags := flag.NewFlagSet("logging", flag.ExitOnError)
	zapOptions.BindFlags(goflags)
	pflag.CommandLine.AddGoFlagSet(goflags)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("init")
	logger.Info("service starting", "application", "accounts-stub")

	if o.jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "--jwt-secret is required")
		os.Exit(1)
	}

	ctx := log.IntoContext(signals.SetupSignalHandler(), log.Log.WithName("accounts"))

	service := users.New(users.Options{
		Secret:   []byte(o.jwtSecret),
		TokenTTL: o.tokenTTL,
	})

	if o.seed {
		if err := service.Seed(ctx, users.DefaultFixtures()...); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	if err := server.Run(ctx, &o.server, service); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
