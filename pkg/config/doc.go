// Package config loads environment variables into typed structs.
// Each configuration type is parsed once and cached for later calls.
//
// A .env file in the working directory is loaded on first use; variables
// already set in the environment win over it. Parsing uses caarlos0/env, so
// structs are described with env and envDefault tags:
//
//	var smtpCfg smtp.Config
//	if err := config.Load(&smtpCfg); err != nil {
//		return err
//	}
//
//	// Or panic on failure, useful at startup.
//	config.MustLoad(&smtpCfg)
//
// Different types are cached independently, so mail.Config and
// smtp.Config can be loaded side by side.
package config
