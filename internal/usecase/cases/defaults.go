package cases

import (
	"strings"

	"github.com/futig/interview-cases/internal/entity"
)

// defaultCases are seeded into an empty store and recognised by the resolver
var defaultCases = []entity.Case{
	{
		Name:            "Estrategia Cloud",
		Description:     "Definición de una estrategia de adopción de nube para la organización.",
		Objective:       "Evaluar cómo el candidato diseña una hoja de ruta de migración y operación en la nube.",
		ExpectedOutcome: "Una estrategia cloud priorizada con modelo de gobierno, costes y riesgos identificados.",
		IsDefault:       true,
	},
	{
		Name:            "Eficiencia TI",
		Description:     "Optimización de costes y procesos del área de tecnología.",
		Objective:       "Evaluar cómo el candidato identifica ineficiencias y propone mejoras medibles.",
		ExpectedOutcome: "Un plan de eficiencia con iniciativas, métricas y retorno esperado.",
		IsDefault:       true,
	},
	{
		Name:            "Arquitectura Mobile",
		Description:     "Diseño de la arquitectura de una plataforma de aplicaciones móviles.",
		Objective:       "Evaluar cómo el candidato equilibra experiencia de usuario, seguridad y escalabilidad en mobile.",
		ExpectedOutcome: "Una arquitectura mobile de referencia con decisiones técnicas justificadas.",
		IsDefault:       true,
	},
}

// DefaultCaseNames returns the names of the seeded cases
func DefaultCaseNames() []string {
	names := make([]string, len(defaultCases))
	for i, c := range defaultCases {
		names[i] = c.Name
	}
	return names
}

var slugReplacer = strings.NewReplacer("-", " ", "_", " ", ".", " ")

// slug lowercases s, treats - _ and . as spaces and collapses whitespace
func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(slugReplacer.Replace(s))), " ")
}
