package core

// Epsilon is the smallest accepted hit distance and the offset applied to
// secondary ray origins to avoid re-hitting the surface they start on.
const Epsilon = 1e-9
