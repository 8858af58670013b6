// Package docs registers the Swagger documents served at /swagger/.
package docs

import "github.com/swaggo/swag"

// Swagger instance names, one per service mode.
const (
	EstimatorInstance = "estimator"
	JournalInstance   = "journal"
)

// @title           Fare Estimator API
// @version         1.0
// @description     Simulated fare and ETA estimates for Dhaka rides, with booking confirmation and a WebSocket form session.
// @host            localhost:3000
// @BasePath        /
var EstimatorSwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fare Estimator API",
	Description:      "Simulated fare and ETA estimates for Dhaka rides, with booking confirmation and a WebSocket form session.",
	InfoInstanceName: EstimatorInstance,
	SwaggerTemplate:  estimatorTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// @title           Fare Journal API
// @version         1.0
// @description     Audit journal of estimator events. Admin only.
// @host            localhost:3001
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
var JournalSwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fare Journal API",
	Description:      "Audit journal of estimator events. Admin only.",
	InfoInstanceName: JournalInstance,
	SwaggerTemplate:  journalTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(EstimatorSwaggerInfo.InstanceName(), EstimatorSwaggerInfo)
	swag.Register(JournalSwaggerInfo.InstanceName(), JournalSwaggerInfo)
}
