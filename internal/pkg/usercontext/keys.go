package usercontext

// Locals key the middleware stores the UserContext under
const LocalsKey = "USER_CONTEXT"
