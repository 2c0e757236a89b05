package formulas

// EnergyPerKgKcal is the energy content of one kg of fat-equivalent body
// tissue, the conversion factor between cumulative energy gap and mass.
const EnergyPerKgKcal = 7700.0
