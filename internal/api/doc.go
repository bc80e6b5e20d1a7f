// Package api provides the Everbloom wedding site admin REST API.
//
//	@title						Everbloom Admin API
//	@version					1.0
//	@description				Wedding website builder admin API
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	SessionAuth
//	@in							header
//	@name						X-Session-Token
package api
