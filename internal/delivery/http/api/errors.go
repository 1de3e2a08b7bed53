package api

import "github.com/gin-gonic/gin"

// User-facing strings. The API speaks Spanish; the 403 body keeps the
// English "Unauthorized" the product shipped with.
const (
	msgRegistered       = "Registrado correctamente"
	msgBadCredentials   = "Credenciales incorrectas"
	msgLoggedOut        = "Sesión cerrada correctamente"
	msgNotAuthenticated = "No autenticado."
	msgTaskForbidden    = "Unauthorized"
	msgTaskNotFound     = "Tarea no encontrada"
	msgTaskDeleted      = "Tarea eliminada correctamente"
)

// Fixed 500 bodies. The underlying error goes to the log, never to
// the client.
const (
	errServerError      = "Error interno del servidor"
	errRegisterFailed   = "Error en el registro"
	errLoginFailed      = "Error en el inicio de sesión"
	errLogoutFailed     = "Error al cerrar la sesión"
	errListTasksFailed  = "Ocurrió un error al obtener las tareas."
	errCreateTaskFailed = "Error al crear la tarea"
	errUpdateTaskFailed = "Error al actualizar la tarea"
	errDeleteTaskFailed = "Error al eliminar la tarea"
)

// abortError writes the {"error": ...} body used by validation
// and server failures.
func abortError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// abortMessage writes the {"message": ...} body used by auth
// and not-found outcomes.
func abortMessage(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}
